// Package images recognizes image records stored in Kindle containers.
package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	_ "golang.org/x/image/bmp"
)

// ErrNotImage is returned when data does not start with a signature of a
// format Kindle image records use.
var ErrNotImage = errors.New("not a supported image")

// Kindle readers only understand these, anything else in a record is not an
// image as far as containers are concerned.
var supported = map[string]bool{
	"jpg": true,
	"png": true,
	"gif": true,
	"bmp": true,
}

// Generic matchers accept "GIF" and "BM" alone, which is common start of
// plain text. Records are only trusted when header is fully formed.
var (
	gifVersions = [][]byte{[]byte("GIF87a"), []byte("GIF89a")}
	// BITMAPCOREHEADER, BITMAPINFOHEADER, V2, V3, OS/2 v2, V4 and V5
	dibHeaderSizes = map[uint32]bool{12: true, 40: true, 52: true, 56: true, 64: true, 108: true, 124: true}
)

func wellFormed(ext string, data []byte) bool {
	switch ext {
	case "gif":
		for _, v := range gifVersions {
			if bytes.HasPrefix(data, v) {
				return true
			}
		}
		return false
	case "bmp":
		// file header is 14 bytes followed by DIB header size, reserved
		// fields must be zero
		if len(data) < 18 || binary.LittleEndian.Uint32(data[6:]) != 0 {
			return false
		}
		return dibHeaderSizes[binary.LittleEndian.Uint32(data[14:])]
	default:
		return true
	}
}

// Sniff returns type of the image data starts with.
func Sniff(data []byte) (types.Type, bool) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown || !supported[kind.Extension] || !wellFormed(kind.Extension, data) {
		return filetype.Unknown, false
	}
	return kind, true
}

// IsImage reports whether data starts with a supported image signature.
func IsImage(data []byte) bool {
	_, ok := Sniff(data)
	return ok
}

// Info is what Probe learns from the image header.
type Info struct {
	Type   string
	Width  int
	Height int
}

func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d", i.Type, i.Width, i.Height)
}

// Probe checks signature and decodes image header. Pixel data is not touched.
func Probe(data []byte) (Info, error) {
	kind, ok := Sniff(data)
	if !ok {
		return Info{}, ErrNotImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("unable to decode %s header: %w", kind.Extension, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("bad %s dimensions %dx%d", kind.Extension, cfg.Width, cfg.Height)
	}
	return Info{Type: kind.Extension, Width: cfg.Width, Height: cfg.Height}, nil
}
