package mobi

import (
	"hdmerge/pdb"
)

// ResourceEntry is a classified sidecar record. For images Data holds image
// bytes with any resource header stripped.
type ResourceEntry struct {
	Index int
	Kind  ResourceKind
	Data  []byte
}

// Sidecar is a parsed high resolution resource container.
type Sidecar struct {
	Container *pdb.Container
	Entries   []ResourceEntry
}

// LoadSidecar parses resource container and classifies all its records past
// the header record.
func LoadSidecar(data []byte) (*Sidecar, error) {
	c, err := pdb.Parse(data, pdb.TagResource, pdb.TagBook, pdb.TagText)
	if err != nil {
		return nil, err
	}

	s := &Sidecar{Container: c}
	for i := 1; i < c.Count(); i++ {
		rec, err := c.Section(i)
		if err != nil {
			return nil, err
		}
		kind, payload := Classify(rec)
		s.Entries = append(s.Entries, ResourceEntry{Index: i, Kind: kind, Data: payload})
	}
	return s, nil
}

// Slots returns entries which take part in positional alignment with book
// image records: images and fillers, in sidecar order.
func (s *Sidecar) Slots() []ResourceEntry {
	return slots(s.Entries)
}

func slots(entries []ResourceEntry) []ResourceEntry {
	res := make([]ResourceEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == ResourceKindImage || e.Kind == ResourceKindFiller {
			res = append(res, e)
		}
	}
	return res
}
