package merge

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
)

// Kind of input as recognized by its first bytes.
// ENUM(unknown, book, kfx, topaz, archive)
type InputKind int

// headerLen is enough to see container tag.
const headerLen = 0x44

var (
	typeBook  = types.NewType("mobi", "application/x-mobipocket-ebook")
	typeKFX   = types.NewType("kfx", "application/vnd.amazon.ebook")
	typeTopaz = types.NewType("tpz", "application/x-topaz-ebook")

	// Kindle formats we recognize, but cannot handle
	kindleTypes = matchers.Map{
		typeBook: func(buf []byte) bool {
			return len(buf) >= 0x44 && (bytes.Equal(buf[0x3C:0x44], []byte("BOOKMOBI")) || bytes.Equal(buf[0x3C:0x44], []byte("TEXtREAd")))
		},
		typeKFX: func(buf []byte) bool {
			return bytes.HasPrefix(buf, []byte("\xeaDRMION\xee"))
		},
		typeTopaz: func(buf []byte) bool {
			return bytes.HasPrefix(buf, []byte("TPZ"))
		},
	}
)

// detectKind classifies input by its header.
func detectKind(header []byte) InputKind {
	switch filetype.MatchMap(header, kindleTypes) {
	case typeBook:
		return InputKindBook
	case typeKFX:
		return InputKindKfx
	case typeTopaz:
		return InputKindTopaz
	}
	if filetype.Is(header, "zip") {
		return InputKindArchive
	}
	return InputKindUnknown
}

// readHeader reads beginning of the stream, short streams are not an error.
func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// detectFile returns kind of file on disk.
func detectFile(path string) (InputKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return InputKindUnknown, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return InputKindUnknown, fmt.Errorf("unable to read file header: %w", err)
	}
	return detectKind(header), nil
}
