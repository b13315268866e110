package merge

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"hdmerge/config"
)

func TestExpandTemplate(t *testing.T) {
	book := setupTestBookForPath(t, sampleBookWithMeta())

	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr bool
	}{
		{"plain", "static", "static", false},
		{"values", "{{ .Author }} - {{ .Title }} [{{ .ASIN }}]", "John Doe - Test Book [B00TEST123]", false},
		{"kind", "{{ .Kind }}", "modern", false},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName), false},
		{"source file", "{{ .SourceFile }}", "source", false},
		{"sprig", `{{ .Title | upper | replace " " "_" }}`, "TEST_BOOK", false},
		{"parse error", "{{ .Title", "", true},
		{"unknown field", "{{ .Publisher }}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(book, filepath.Join("dir", "source.azw"), config.OutputNameTemplateFieldName, tt.tmpl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValuesDocumented(t *testing.T) {
	typ := reflect.TypeFor[Values]()
	for i := range typ.NumField() {
		name := "." + typ.Field(i).Name
		if !bytes.Contains(config.ConfigTmpl, []byte(name)) {
			t.Errorf("template value %s is not documented in default configuration", name)
		}
	}
}
