package pdb

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestRebuild_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"book", buildContainer(t, TagBook, []byte("header"), bytes.Repeat([]byte{1}, 300), []byte("tail"))},
		{"text", buildContainer(t, TagText, []byte("single"))},
		{"empty records", buildContainer(t, TagBook, []byte("r0"), nil, nil, []byte("r3"), nil)},
		{"no records", buildContainer(t, TagBook)},
		{"wide gap", func() []byte {
			// record 0 starts well after the table, gap bytes must survive
			d := buildContainer(t, TagBook, []byte("r0"), []byte("r1"))
			at := headerLen + 2*entryLen
			d = append(d[:at:at], append([]byte{0, 0, 0xDE, 0xAD, 0xBE, 0xEF}, d[at+2:]...)...)
			binary.BigEndian.PutUint32(d[headerLen:], binary.BigEndian.Uint32(d[headerLen:])+4)
			binary.BigEndian.PutUint32(d[headerLen+entryLen:], binary.BigEndian.Uint32(d[headerLen+entryLen:])+4)
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			out, err := c.Rebuild(nil)
			if err != nil {
				t.Fatalf("Rebuild() error = %v", err)
			}
			if !bytes.Equal(out, tt.data) {
				t.Errorf("Rebuild(nil) is not byte identical to input (len %d vs %d)", len(out), len(tt.data))
			}
		})
	}
}

func TestRebuild_OffsetShift(t *testing.T) {
	data := buildContainer(t, TagBook,
		[]byte("record zero"),
		bytes.Repeat([]byte{0x11}, 50),
		bytes.Repeat([]byte{0x22}, 100), // replaced
		bytes.Repeat([]byte{0x33}, 10),
		bytes.Repeat([]byte{0x44}, 30),
	)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	replacement := bytes.Repeat([]byte{0x55}, 500)
	out, err := c.Rebuild(map[int][]byte{2: replacement})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if len(out) != len(data)+400 {
		t.Errorf("len(out) = %d, want %d", len(out), len(data)+400)
	}

	m, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() of rebuilt container error = %v", err)
	}
	if m.Count() != c.Count() {
		t.Fatalf("Count() = %d, want %d", m.Count(), c.Count())
	}
	if got, want := binary.BigEndian.Uint16(out[countOffset:]), binary.BigEndian.Uint16(data[countOffset:]); got != want {
		t.Errorf("header record count = %d, want %d", got, want)
	}

	placeholder := c.Descriptors[2].Offset
	for i := range c.Descriptors {
		was, now := c.Descriptors[i], m.Descriptors[i]
		want := was.Offset
		if was.Offset > placeholder {
			want += 400
		}
		if now.Offset != want {
			t.Errorf("record %d offset = %d, want %d", i, now.Offset, want)
		}
		if now.Flags != was.Flags || now.Value != was.Value {
			t.Errorf("record %d flags/value = %d/%d, want %d/%d", i, now.Flags, now.Value, was.Flags, was.Value)
		}
	}

	for i := range c.Descriptors {
		got, _ := m.Section(i)
		want, _ := c.Section(i)
		if i == 2 {
			want = replacement
		}
		if !bytes.Equal(got, want) {
			t.Errorf("record %d content differs after rebuild", i)
		}
	}
	if !bytes.Equal(out[:nameLen], data[:nameLen]) {
		t.Error("header name changed by rebuild")
	}
}

func TestRebuild_DoesNotModifySource(t *testing.T) {
	data := buildContainer(t, TagBook, []byte("r0"), []byte("r1"), []byte("r2"))
	orig := bytes.Clone(data)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := c.Rebuild(map[int][]byte{1: []byte("a much longer record")}); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if !bytes.Equal(data, orig) {
		t.Error("Rebuild() modified source buffer")
	}
}

func TestRebuild_OutOfRange(t *testing.T) {
	c, err := Parse(buildContainer(t, TagBook, []byte("r0")))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, i := range []int{-1, 1, 10} {
		if _, err := c.Rebuild(map[int][]byte{i: []byte("x")}); err == nil {
			t.Errorf("Rebuild() with replacement for record %d should fail", i)
		}
	}
}
