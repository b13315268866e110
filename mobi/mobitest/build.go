// Package mobitest builds synthetic books and sidecars for tests.
package mobitest

import (
	"bytes"
	"encoding/binary"
)

const (
	TagBook     = "BOOKMOBI"
	TagText     = "TEXtREAd"
	TagResource = "RBINCONT"
)

// Container assembles container named "Test_Book" with two byte gap after
// the record table. Record i gets flags i and value 2*i.
func Container(tag string, records ...[]byte) []byte {
	var buf bytes.Buffer
	name := make([]byte, 32)
	copy(name, "Test_Book")
	buf.Write(name)
	buf.Write(make([]byte, 0x3C-32))
	buf.WriteString(tag)
	buf.Write(make([]byte, 76-0x3C-8))
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(records)))

	offset := uint32(78 + len(records)*8 + 2)
	for i, r := range records {
		_ = binary.Write(&buf, binary.BigEndian, offset)
		_ = binary.Write(&buf, binary.BigEndian, uint32(i)<<24|uint32(2*i))
		offset += uint32(len(r))
	}
	buf.Write([]byte{0, 0})
	for _, r := range records {
		buf.Write(r)
	}
	return buf.Bytes()
}

// ExthRecord is a single EXTH metadata entry.
type ExthRecord struct {
	Type uint32
	Data string
}

// Record0 describes PalmDOC and MOBI headers of the first record.
type Record0 struct {
	TextRecords uint16
	Crypto      uint16
	Version     uint32
	FirstImage  uint32
	Encoding    uint32 // UTF-8 when zero
	FullName    string
	Exth        []ExthRecord
	Short       int // when not zero record is cut to this length
}

// Bytes renders record with 0xE8 bytes MOBI header.
func (r Record0) Bytes() []byte {
	const headerLen = 0xE8

	rec := make([]byte, 0x10+headerLen)
	binary.BigEndian.PutUint16(rec[0:], 2)
	binary.BigEndian.PutUint16(rec[0x08:], r.TextRecords)
	binary.BigEndian.PutUint16(rec[0x0C:], r.Crypto)
	copy(rec[0x10:], "MOBI")
	binary.BigEndian.PutUint32(rec[0x14:], headerLen)
	binary.BigEndian.PutUint32(rec[0x18:], 2)
	enc := r.Encoding
	if enc == 0 {
		enc = 65001
	}
	binary.BigEndian.PutUint32(rec[0x1C:], enc)
	binary.BigEndian.PutUint32(rec[0x68:], r.Version)
	binary.BigEndian.PutUint32(rec[0x6C:], r.FirstImage)

	if len(r.Exth) > 0 {
		binary.BigEndian.PutUint32(rec[0x80:], 0x50)

		var body bytes.Buffer
		for _, e := range r.Exth {
			_ = binary.Write(&body, binary.BigEndian, e.Type)
			_ = binary.Write(&body, binary.BigEndian, uint32(8+len(e.Data)))
			body.WriteString(e.Data)
		}
		rec = append(rec, "EXTH"...)
		rec = binary.BigEndian.AppendUint32(rec, uint32(12+body.Len()))
		rec = binary.BigEndian.AppendUint32(rec, uint32(len(r.Exth)))
		rec = append(rec, body.Bytes()...)
	}

	if r.FullName != "" {
		binary.BigEndian.PutUint32(rec[0x54:], uint32(len(rec)))
		binary.BigEndian.PutUint32(rec[0x58:], uint32(len(r.FullName)))
		rec = append(rec, r.FullName...)
		rec = append(rec, 0, 0)
	}
	if r.Short > 0 {
		rec = rec[:r.Short]
	}
	return rec
}

// JPEG returns record with JPEG signature padded to size bytes. It is only
// good enough for signature sniffing.
func JPEG(fill byte, size int) []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{fill}, size-4)...)
}

// PNG returns record with PNG signature padded to size bytes.
func PNG(fill byte, size int) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{fill}, size-8)...)
}

// CRES wraps image into high resolution resource record.
func CRES(image []byte) []byte {
	hdr := make([]byte, 12)
	copy(hdr, "CRES")
	return append(hdr, image...)
}

// Filler is a sidecar record holding no high resolution image.
func Filler() []byte {
	return []byte{0xA0, 0xA0, 0xA0, 0xA0}
}

// EOF is the end of file marker record.
func EOF() []byte {
	return []byte{0xE9, 0x8E, '\r', '\n'}
}

// HD are high resolution images matching images of Book.
var HD = [][]byte{JPEG('A', 500), PNG('B', 300), JPEG('C', 700)}

// Placeholders are indices of image records in Book.
var Placeholders = []int{3, 5, 7}

// Book returns KF8 book with text records, three low resolution images mixed
// with non image records and a tail of service records.
func Book(exth ...ExthRecord) []byte {
	return Container(TagBook,
		Record0{TextRecords: 2, Version: 8, FirstImage: 3, FullName: "Sample Book", Exth: exth}.Bytes(),
		[]byte("<html><body>chapter one"),
		[]byte("chapter two</body></html>"),
		JPEG('a', 100),
		[]byte("FONT\x00\x00\x00\x18fontdata"),
		PNG('b', 60),
		[]byte("RESC\x00\x00\x00\x10"),
		JPEG('c', 80),
		[]byte("FLIS\x00\x00\x00\x08"),
		[]byte("FCIS\x00\x00\x00\x14"),
		EOF(),
	)
}

// Sidecar returns resource container with given slot records. Without slots
// it carries CRES wrapped HD images.
func Sidecar(slots ...[]byte) []byte {
	if len(slots) == 0 {
		for _, img := range HD {
			slots = append(slots, CRES(img))
		}
	}
	records := [][]byte{[]byte("CONT\x00\x00\x00\x30header")}
	records = append(records, slots...)
	records = append(records,
		[]byte("kindle:embed:0001"),
		[]byte("CONTBOUNDARY"),
		EOF(),
	)
	return Container(TagResource, records...)
}
