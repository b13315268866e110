package pdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildContainer assembles container with the given records, two byte gap
// after the record table and every record flagged with its index.
func buildContainer(t *testing.T, tag string, records ...[]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	name := make([]byte, nameLen)
	copy(name, "Test_Book")
	buf.Write(name)
	buf.Write(make([]byte, tagOffset-nameLen))
	buf.WriteString(tag)
	buf.Write(make([]byte, countOffset-tagOffset-tagLen))
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(records)))

	offset := uint32(headerLen + len(records)*entryLen + 2)
	for i, r := range records {
		_ = binary.Write(&buf, binary.BigEndian, offset)
		buf.WriteByte(byte(i))
		buf.Write([]byte{0, byte(i >> 8), byte(2 * i)})
		offset += uint32(len(r))
	}
	buf.Write([]byte{0, 0})
	for _, r := range records {
		buf.Write(r)
	}
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	records := [][]byte{
		bytes.Repeat([]byte{'a'}, 20),
		{},
		[]byte("second"),
		bytes.Repeat([]byte{'z'}, 7),
	}
	data := buildContainer(t, TagBook, records...)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Name != "Test_Book" {
		t.Errorf("Name = %q, want %q", c.Name, "Test_Book")
	}
	if c.Tag != TagBook {
		t.Errorf("Tag = %q, want %q", c.Tag, TagBook)
	}
	if c.Count() != len(records) {
		t.Fatalf("Count() = %d, want %d", c.Count(), len(records))
	}
	for i, want := range records {
		got, err := c.Section(i)
		if err != nil {
			t.Fatalf("Section(%d) error = %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Section(%d) = %q, want %q", i, got, want)
		}
		if c.Descriptors[i].Flags != uint8(i) {
			t.Errorf("Descriptors[%d].Flags = %d, want %d", i, c.Descriptors[i].Flags, i)
		}
		if c.Descriptors[i].Value != uint32(2*i) {
			t.Errorf("Descriptors[%d].Value = %d, want %d", i, c.Descriptors[i].Value, 2*i)
		}
	}
	if _, err := c.Section(len(records)); err == nil {
		t.Error("Section() past the last record should fail")
	}
	if _, err := c.Section(-1); err == nil {
		t.Error("Section(-1) should fail")
	}
}

func TestParse_Value24Bit(t *testing.T) {
	data := buildContainer(t, TagText, []byte("only"))
	copy(data[headerLen+5:headerLen+8], []byte{0xAB, 0xCD, 0xEF})

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Descriptors[0].Value != 0xABCDEF {
		t.Errorf("Value = %#x, want %#x", c.Descriptors[0].Value, 0xABCDEF)
	}
}

func TestParse_Tags(t *testing.T) {
	res := buildContainer(t, TagResource, []byte("CONT"))

	if _, err := Parse(res); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Parse() of resource container with book tags error = %v, want ErrBadMagic", err)
	}
	if _, err := Parse(res, TagBook, TagResource); err != nil {
		t.Errorf("Parse() with resource tag allowed error = %v", err)
	}
}

func TestParse_BadMagic(t *testing.T) {
	for _, tag := range []string{"BOOKMOBJ", "textread", "\x00\x00\x00\x00\x00\x00\x00\x00", "PDF-1.7 ", "RBINCONT"} {
		t.Run(tag, func(t *testing.T) {
			data := buildContainer(t, tag, []byte("record"))
			_, err := Parse(data)
			if !errors.Is(err, ErrBadMagic) {
				t.Fatalf("Parse() error = %v, want ErrBadMagic", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) || fe.Kind != FormatErrorKindBadMagic {
				t.Errorf("error %v is not a bad-magic FormatError", err)
			}
		})
	}
}

func TestParse_Truncated(t *testing.T) {
	valid := buildContainer(t, TagBook, []byte("first record"), []byte("second record"))

	tests := []struct {
		name   string
		mangle func([]byte) []byte
	}{
		{"short header", func(b []byte) []byte { return b[:headerLen-1] }},
		{"table past end", func(b []byte) []byte {
			binary.BigEndian.PutUint16(b[countOffset:], 1000)
			return b
		}},
		{"offsets out of order", func(b []byte) []byte {
			first := binary.BigEndian.Uint32(b[headerLen:])
			binary.BigEndian.PutUint32(b[headerLen+entryLen:], first-1)
			return b
		}},
		{"offset past end", func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[headerLen+entryLen:], uint32(len(b)+1))
			return b
		}},
		{"record overlaps table", func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[headerLen:], headerLen)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mangle(bytes.Clone(valid))
			_, err := Parse(data)
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("Parse() error = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	err := error(&FormatError{Kind: FormatErrorKindEncrypted, CryptoType: 2})
	if !errors.Is(err, ErrEncrypted) {
		t.Errorf("errors.Is(%v, ErrEncrypted) = false", err)
	}
	if errors.Is(err, ErrTruncated) {
		t.Errorf("errors.Is(%v, ErrTruncated) = true", err)
	}
	if got, want := err.Error(), "pdb: encrypted container (crypto type 2)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
