package mobi

import (
	"bytes"
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"hdmerge/common"
)

// MOBI header fields, offsets are from the start of record 0.
const (
	mobiMagic        = 0x10
	mobiHeaderLength = 0x14
	textEncoding     = 0x1C
	fullNameOffset   = 0x54
	fullNameLength   = 0x58
	exthFlags        = 0x80
)

// EXTH record types.
const (
	exthAuthor       = 100
	exthASIN         = 113
	exthUpdatedTitle = 503
	exthLanguage     = 524
)

const encodingCP1252 = 1252

// Metadata is the part of book description we use for naming output.
type Metadata struct {
	Title    string
	Author   string
	ASIN     string
	Language string
}

func getUint32(data []byte, ofs int) (uint32, bool) {
	if ofs < 0 || ofs+4 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[ofs:]), true
}

func hasMobiHeader(rec0 []byte) bool {
	return len(rec0) >= mobiMagic+4 && bytes.Equal(rec0[mobiMagic:mobiMagic+4], []byte("MOBI"))
}

// exthStart returns offset of EXTH block in record 0 if it is present.
func exthStart(rec0 []byte) (int, bool) {
	if !hasMobiHeader(rec0) {
		return 0, false
	}
	flags, ok := getUint32(rec0, exthFlags)
	if !ok || flags&0x40 == 0 {
		return 0, false
	}
	hlen, ok := getUint32(rec0, mobiHeaderLength)
	if !ok {
		return 0, false
	}
	start := mobiMagic + int(hlen)
	if start+12 > len(rec0) || !bytes.Equal(rec0[start:start+4], []byte("EXTH")) {
		return 0, false
	}
	return start, true
}

// readExth returns payloads of all EXTH records of the requested type in
// order of appearance. Damaged EXTH block is read up to the first bad record.
func readExth(rec0 []byte, typ uint32) [][]byte {
	start, ok := exthStart(rec0)
	if !ok {
		return nil
	}
	count, _ := getUint32(rec0, start+8)

	var res [][]byte
	for pos, i := start+12, uint32(0); i < count; i++ {
		t, ok1 := getUint32(rec0, pos)
		l, ok2 := getUint32(rec0, pos+4)
		if !ok1 || !ok2 || l < 8 || pos+int(l) > len(rec0) {
			break
		}
		if t == typ {
			res = append(res, rec0[pos+8:pos+int(l)])
		}
		pos += int(l)
	}
	return res
}

func decodeText(data []byte, encoding uint32) string {
	data = bytes.TrimRight(data, "\x00")
	if encoding == encodingCP1252 {
		if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
			return string(out)
		}
	}
	return strings.ToValidUTF8(string(data), "")
}

// readMetadata extracts book description from record 0. EXTH values win
// over the MOBI header full name, which wins over database name.
func readMetadata(name string, rec0 []byte) Metadata {
	md := Metadata{Title: name}
	if !hasMobiHeader(rec0) {
		return md
	}
	enc, _ := getUint32(rec0, textEncoding)

	off, ok1 := getUint32(rec0, fullNameOffset)
	l, ok2 := getUint32(rec0, fullNameLength)
	if ok1 && ok2 && l > 0 && int64(off)+int64(l) <= int64(len(rec0)) {
		md.Title = decodeText(rec0[off:off+l], enc)
	}

	first := func(typ uint32) string {
		if v := readExth(rec0, typ); len(v) > 0 {
			return strings.TrimSpace(decodeText(v[0], enc))
		}
		return ""
	}
	if t := first(exthUpdatedTitle); t != "" {
		md.Title = t
	}
	if authors := readExth(rec0, exthAuthor); len(authors) > 0 {
		names := make([]string, 0, len(authors))
		for _, a := range authors {
			if s := strings.TrimSpace(decodeText(a, enc)); s != "" {
				names = append(names, s)
			}
		}
		md.Author = strings.Join(names, ", ")
	}
	if asin, err := common.NormalizeASIN(first(exthASIN)); err == nil {
		md.ASIN = asin
	}
	md.Language = first(exthLanguage)
	return md
}
