package mobi

import (
	"bytes"

	"hdmerge/utils/images"
)

// Kind of record as far as image merging is concerned.
// ENUM(other, image, filler, boundary)
type ResourceKind int

// cresHeaderLen is size of the header preceding image data in high
// resolution resource records.
const cresHeaderLen = 12

var (
	sigCRES   = []byte("CRES")
	sigFiller = []byte{0xA0, 0xA0, 0xA0, 0xA0}

	boundaries = [][]byte{
		[]byte("BOUNDARY"),
		[]byte("CONTBOUNDARY"),
		{0xE9, 0x8E, '\r', '\n'}, // EOF
	}

	// records which are never images even if their payload happens to
	// start with something resembling image signature
	markers = [][]byte{
		[]byte("FLIS"), []byte("FCIS"), []byte("SRCS"), []byte("DATP"),
		[]byte("RESC"), []byte("FONT"), []byte("CMET"), []byte("PAGE"),
		[]byte("CONT"), []byte("FDST"), []byte("INDX"), []byte("AUDI"),
		[]byte("VIDE"), []byte("kind"), []byte("MOBI"),
	}
)

func hasAnyPrefix(data []byte, prefixes [][]byte) bool {
	for _, p := range prefixes {
		if bytes.HasPrefix(data, p) {
			return true
		}
	}
	return false
}

// Classify returns kind of the record and, for images, the image bytes.
// High resolution records wrapped in CRES header are reported as images
// even when wrapped payload is not usable, merge engine rejects those later.
func Classify(data []byte) (ResourceKind, []byte) {
	switch {
	case hasAnyPrefix(data, boundaries):
		return ResourceKindBoundary, nil
	case bytes.HasPrefix(data, sigCRES):
		if len(data) < cresHeaderLen {
			return ResourceKindImage, nil
		}
		return ResourceKindImage, data[cresHeaderLen:]
	case bytes.HasPrefix(data, sigFiller):
		return ResourceKindFiller, nil
	case hasAnyPrefix(data, markers):
		return ResourceKindOther, nil
	case images.IsImage(data):
		return ResourceKindImage, data
	default:
		return ResourceKindOther, nil
	}
}

// isPlaceholder reports whether book record is a bare image record.
func isPlaceholder(data []byte) bool {
	kind, _ := Classify(data)
	return kind == ResourceKindImage && !bytes.HasPrefix(data, sigCRES)
}
