package pdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Rebuild serializes container with records listed in replacements swapped
// for the new bytes. Record count, flags and values are preserved, every
// record offset is recomputed as running sum of preceding record lengths.
// Bytes between the record table and the first record are kept as is, so
// Rebuild(nil) reproduces the original buffer exactly.
func (c *Container) Rebuild(replacements map[int][]byte) ([]byte, error) {
	for i := range replacements {
		if i < 0 || i >= len(c.Descriptors) {
			return nil, fmt.Errorf("pdb: replacement for record %d out of range (%d records)", i, len(c.Descriptors))
		}
	}
	if len(c.Descriptors) == 0 {
		return bytes.Clone(c.data), nil
	}

	first := int(c.Descriptors[0].Offset)
	records := make([][]byte, len(c.Descriptors))
	size := int64(first)
	for i := range c.Descriptors {
		if r, ok := replacements[i]; ok {
			records[i] = r
		} else {
			s, err := c.Section(i)
			if err != nil {
				return nil, err
			}
			records[i] = s
		}
		size += int64(len(records[i]))
	}
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("pdb: rebuilt container would be %d bytes, offsets are limited to 32 bits", size)
	}

	out := bytes.NewBuffer(make([]byte, 0, size))
	out.Write(c.data[:headerLen])

	offset := uint32(first)
	for i, d := range c.Descriptors {
		e := tableEntry{
			Offset: offset,
			Flags:  d.Flags,
			Value:  [3]byte{byte(d.Value >> 16), byte(d.Value >> 8), byte(d.Value)},
		}
		if err := binary.Write(out, binary.BigEndian, &e); err != nil {
			return nil, err
		}
		offset += uint32(len(records[i]))
	}

	// gap between record table and first record (usually two zero bytes)
	out.Write(c.data[c.tableEnd():first])
	for _, r := range records {
		out.Write(r)
	}
	return out.Bytes(), nil
}
