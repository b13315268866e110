// Package mobi classifies MOBI books and merges high resolution images from
// ".azw.res" sidecars into them. It works on in-memory buffers only, never
// performs I/O and never logs.
package mobi

import (
	"bytes"
	"encoding/binary"

	"hdmerge/common"
	"hdmerge/pdb"
)

// Record 0 offsets.
const (
	textRecordCount = 0x08
	cryptoType      = 0x0C
	mobiVersion     = 0x68
	firstRescRecord = 0x6C
)

var replicaTag = []byte("%MOP")

// Container subtype as signaled by header tag.
// ENUM(unrecognized, text, book)
type Magic int

// Book is a parsed and classified main book. Book is never modified after
// ParseBook, merging produces new bytes instead.
type Book struct {
	Container    *pdb.Container
	Magic        Magic
	Version      int // -1 when not known
	PrintReplica bool
	CryptoType   uint16
	// TextRecords is the number of PalmDOC text records following record 0.
	TextRecords int
	// FirstImage is the index of the first record images are looked for at.
	FirstImage int
	Meta       Metadata
}

// ParseBook parses data as a book container and classifies it. Encrypted
// books are parsed successfully, but cannot be merged.
func ParseBook(data []byte) (*Book, error) {
	c, err := pdb.Parse(data, pdb.BookTags...)
	if err != nil {
		return nil, err
	}
	return classify(c)
}

func classify(c *pdb.Container) (*Book, error) {
	if c.Count() == 0 {
		return nil, &pdb.FormatError{Kind: pdb.FormatErrorKindTruncated, Detail: "book has no records"}
	}
	rec0, err := c.Section(0)
	if err != nil {
		return nil, err
	}
	if len(rec0) < cryptoType+2 {
		return nil, &pdb.FormatError{Kind: pdb.FormatErrorKindTruncated, Detail: "record 0 is too short for PalmDOC header"}
	}

	b := &Book{
		Container:   c,
		Magic:       MagicText,
		Version:     -1,
		CryptoType:  binary.BigEndian.Uint16(rec0[cryptoType:]),
		TextRecords: int(binary.BigEndian.Uint16(rec0[textRecordCount:])),
		FirstImage:  1,
	}

	if c.Tag == pdb.TagBook {
		b.Magic = MagicBook
		v, ok := getUint32(rec0, mobiVersion)
		if !ok {
			return nil, &pdb.FormatError{Kind: pdb.FormatErrorKindTruncated, Detail: "record 0 is too short for MOBI header"}
		}
		b.Version = int(int32(v))

		if hasMobiHeader(rec0) {
			if first, ok := getUint32(rec0, firstRescRecord); ok && first > 0 && int64(first) < int64(c.Count()) {
				b.FirstImage = int(first)
			}
		}
	}

	if b.Encrypted() {
		return b, nil
	}

	if c.Count() > 1 {
		rec1, err := c.Section(1)
		if err != nil {
			return nil, err
		}
		b.PrintReplica = bytes.HasPrefix(rec1, replicaTag)
	}
	b.Meta = readMetadata(c.Name, rec0)
	return b, nil
}

// Encrypted reports whether book payload is protected.
func (b *Book) Encrypted() bool {
	return b.CryptoType != 0
}

// Payload returns bytes of the book as parsed.
func (b *Book) Payload() []byte {
	return b.Container.Bytes()
}

// OutputKind selects output container kind for the book.
func (b *Book) OutputKind() common.OutputKind {
	return OutputKindFor(b.PrintReplica, b.Version)
}

// Ext returns output file extension for the book.
func (b *Book) Ext() string {
	return b.OutputKind().Ext()
}

// OutputKindFor implements extension policy: print replica first, then KF8
// (version 8 and above), everything else is legacy mobi.
func OutputKindFor(printReplica bool, version int) common.OutputKind {
	switch {
	case printReplica:
		return common.OutputKindReplica
	case version >= 8:
		return common.OutputKindModern
	default:
		return common.OutputKindLegacy
	}
}

// Placeholders returns indices of image records in book order. Text records
// are never looked at and scan stops at the first boundary record: in
// combined files everything past it belongs to KF8 part which shares images
// of the first part.
func (b *Book) Placeholders() ([]int, error) {
	if b.Encrypted() {
		return nil, &pdb.FormatError{Kind: pdb.FormatErrorKindEncrypted, CryptoType: b.CryptoType}
	}

	var res []int
	for i := max(1, b.FirstImage, b.TextRecords+1); i < b.Container.Count(); i++ {
		rec, err := b.Container.Section(i)
		if err != nil {
			return nil, err
		}
		if hasAnyPrefix(rec, boundaries) {
			break
		}
		if isPlaceholder(rec) {
			res = append(res, i)
		}
	}
	return res, nil
}
