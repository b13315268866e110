// Package pdb reads and writes Palm database containers: the header, record
// table and record payloads shared by MOBI books and their ".azw.res"
// resource sidecars.
package pdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
)

const (
	TagBook     = "BOOKMOBI"
	TagText     = "TEXtREAd"
	TagResource = "RBINCONT"
)

// BookTags are container signatures accepted for books by default.
var BookTags = []string{TagBook, TagText}

const (
	nameLen     = 32
	tagOffset   = 0x3C
	tagLen      = 8
	countOffset = 76
	headerLen   = 78
	entryLen    = 8
)

// tableEntry is the on-disk shape of a record table row.
type tableEntry struct {
	Offset uint32
	Flags  uint8
	Value  [3]byte
}

// Descriptor is a decoded record table row.
type Descriptor struct {
	Offset uint32
	Flags  uint8
	Value  uint32 // 24 bits
}

// Container is a parsed view of a container buffer. Sections returned by it
// share the underlying buffer and must not be modified.
type Container struct {
	Name        string
	Tag         string
	Descriptors []Descriptor

	data []byte
}

// Parse decodes container header and record table. When no tags are given
// BookTags are accepted.
func Parse(data []byte, tags ...string) (*Container, error) {
	if len(tags) == 0 {
		tags = BookTags
	}
	if len(data) < headerLen {
		return nil, truncated("header needs %d bytes, have %d", headerLen, len(data))
	}

	tag := string(data[tagOffset : tagOffset+tagLen])
	if !slices.Contains(tags, tag) {
		return nil, &FormatError{Kind: FormatErrorKindBadMagic, Detail: fmt.Sprintf("%q", tag)}
	}

	count := int(binary.BigEndian.Uint16(data[countOffset:headerLen]))
	tableEnd := headerLen + count*entryLen
	if tableEnd > len(data) {
		return nil, truncated("record table of %d entries runs past end of data (%d > %d)", count, tableEnd, len(data))
	}

	entries := make([]tableEntry, count)
	if err := binary.Read(bytes.NewReader(data[headerLen:tableEnd]), binary.BigEndian, entries); err != nil {
		return nil, truncated("unable to read record table: %v", err)
	}

	c := &Container{
		Name:        string(bytes.TrimRight(data[:nameLen], "\x00")),
		Tag:         tag,
		Descriptors: make([]Descriptor, count),
		data:        data,
	}

	prev := uint32(tableEnd)
	for i, e := range entries {
		switch {
		case i == 0 && e.Offset < prev:
			return nil, truncated("record 0 at %d overlaps record table ending at %d", e.Offset, prev)
		case e.Offset < prev:
			return nil, truncated("record %d at %d precedes record %d at %d", i, e.Offset, i-1, prev)
		case int64(e.Offset) > int64(len(data)):
			return nil, truncated("record %d at %d is past end of data (%d)", i, e.Offset, len(data))
		}
		c.Descriptors[i] = Descriptor{
			Offset: e.Offset,
			Flags:  e.Flags,
			Value:  uint32(e.Value[0])<<16 | uint32(e.Value[1])<<8 | uint32(e.Value[2]),
		}
		prev = e.Offset
	}
	return c, nil
}

// Count returns number of records in the container.
func (c *Container) Count() int {
	return len(c.Descriptors)
}

// Bytes returns the buffer container was parsed from.
func (c *Container) Bytes() []byte {
	return c.data
}

// Section returns bytes of record i: from its offset to the start of the
// next record, or to the end of data for the last one.
func (c *Container) Section(i int) ([]byte, error) {
	if i < 0 || i >= len(c.Descriptors) {
		return nil, fmt.Errorf("pdb: record %d out of range (%d records)", i, len(c.Descriptors))
	}
	start, end := int(c.Descriptors[i].Offset), len(c.data)
	if i+1 < len(c.Descriptors) {
		end = int(c.Descriptors[i+1].Offset)
	}
	if start > end || end > len(c.data) {
		return nil, truncated("record %d spans [%d, %d) outside of data (%d)", i, start, end, len(c.data))
	}
	return c.data[start:end:end], nil
}

// tableEnd is the offset right after the record table.
func (c *Container) tableEnd() int {
	return headerLen + len(c.Descriptors)*entryLen
}
