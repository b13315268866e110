// Package inspect implements "inspect" command: it prints structure of a book
// or sidecar container and optionally extracts its image records.
package inspect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"

	"hdmerge/mobi"
	"hdmerge/pdb"
	"hdmerge/utils/debug"
	"hdmerge/utils/images"
)

// report is parsed container, either book or sidecar is set.
type report struct {
	container *pdb.Container
	book      *mobi.Book
	sidecar   *mobi.Sidecar
}

// parse tries data as a book first and as a sidecar when container tag is
// not a book one.
func parse(data []byte) (*report, error) {
	book, err := mobi.ParseBook(data)
	if err == nil {
		return &report{container: book.Container, book: book}, nil
	}
	if !errors.Is(err, pdb.ErrBadMagic) {
		return nil, err
	}
	sc, serr := mobi.LoadSidecar(data)
	if serr != nil {
		return nil, err
	}
	return &report{container: sc.Container, sidecar: sc}, nil
}

func (r *report) String() string {
	tw := debug.NewTreeWriter()

	c := r.container
	tw.Line(0, "Container %q (%s), %d records, %s", c.Name, c.Tag, c.Count(), humanize.IBytes(uint64(len(c.Bytes()))))

	var placeholders []int
	switch {
	case r.book != nil:
		b := r.book
		tw.Line(1, "Book")
		tw.Field(2, "magic", b.Magic)
		tw.Field(2, "version", b.Version)
		tw.Field(2, "print replica", b.PrintReplica)
		tw.Field(2, "encrypted", fmt.Sprintf("%t (crypto type %d)", b.Encrypted(), b.CryptoType))
		tw.Field(2, "first image record", b.FirstImage)
		tw.Field(2, "output", fmt.Sprintf("%s (%s)", b.OutputKind(), b.Ext()))
		tw.Quoted(2, "title", b.Meta.Title)
		tw.Quoted(2, "author", b.Meta.Author)
		tw.Quoted(2, "asin", b.Meta.ASIN)
		tw.Quoted(2, "language", b.Meta.Language)
		if ph, err := b.Placeholders(); err == nil {
			placeholders = ph
			tw.Field(2, "image records", len(ph))
		} else {
			tw.Field(2, "image records", err)
		}
	case r.sidecar != nil:
		tw.Line(1, "Sidecar")
		tw.Field(2, "image slots", len(r.sidecar.Slots()))
	}

	tw.Line(1, "Records")
	for i, d := range c.Descriptors {
		data, err := c.Section(i)
		if err != nil {
			tw.Line(2, "#%d offset %d: %v", i, d.Offset, err)
			continue
		}
		line := fmt.Sprintf("#%d offset %d flags 0x%02X value %d size %s", i, d.Offset, d.Flags, d.Value, humanize.IBytes(uint64(len(data))))
		if i == 0 {
			tw.Line(2, "%s header", line)
			continue
		}
		kind, payload := mobi.Classify(data)
		line += " " + kind.String()
		if kind == mobi.ResourceKindImage {
			line += " " + describeImage(payload)
		}
		if slices.Contains(placeholders, i) {
			line += " (image record)"
		}
		tw.Line(2, "%s", line)
		if kind == mobi.ResourceKindOther {
			tw.Hex(3, "head", data, 8)
		}
	}
	return tw.String()
}

func describeImage(data []byte) string {
	if info, err := images.Probe(data); err == nil {
		return info.String()
	}
	return extFromFiletype(data)[1:] + " (undecodable)"
}

// extFromFiletype detects the file extension from magic bytes.
func extFromFiletype(b []byte) string {
	kind, err := filetype.Match(b)
	if err == nil && kind != filetype.Unknown && kind.Extension != "" {
		return "." + kind.Extension
	}
	return ".bin"
}
