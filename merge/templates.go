package merge

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"hdmerge/config"
	"hdmerge/mobi"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	SourceFile string
	Title      string
	Author     string
	ASIN       string
	Language   string
	Kind       string
}

func expandTemplate(book *mobi.Book, src string, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Title:      book.Meta.Title,
		Author:     book.Meta.Author,
		ASIN:       book.Meta.ASIN,
		Language:   book.Meta.Language,
		Kind:       book.OutputKind().String(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
