package mobi

import (
	"errors"
	"fmt"

	"hdmerge/pdb"
	"hdmerge/utils/images"
)

// Replacement records single book image record replaced by sidecar resource.
type Replacement struct {
	Section  int // book record index
	Resource int // sidecar record index
	Data     []byte
}

// Plan maps book image records to their high resolution replacements. Plan
// is either complete or not built at all.
type Plan struct {
	Replacements []Replacement
	// Kept lists book records aligned with sidecar fillers, they stay as is.
	Kept []int
}

// Records returns replacement bytes keyed by book record index.
func (p *Plan) Records() map[int][]byte {
	res := make(map[int][]byte, len(p.Replacements))
	for _, r := range p.Replacements {
		res[r.Section] = r.Data
	}
	return res
}

// VerifyFunc is additional check applied to every high resolution resource
// before it is accepted into the plan.
type VerifyFunc func(data []byte) error

type options struct {
	verify VerifyFunc
}

// Option changes AttemptMerge behavior.
type Option func(*options)

// WithVerify adds caller supplied resource check.
func WithVerify(fn VerifyFunc) Option {
	return func(o *options) {
		o.verify = fn
	}
}

// BuildPlan aligns book image records with sidecar resources strictly by
// position: n-th image record of the book is replaced by n-th image slot of
// the sidecar. Fillers keep book record unchanged.
func BuildPlan(placeholders []int, entries []ResourceEntry, verify VerifyFunc) (*Plan, error) {
	aligned := slots(entries)
	if len(aligned) != len(placeholders) {
		return nil, &MergeError{Kind: MergeErrorKindCountMismatch, Book: len(placeholders), Sidecar: len(aligned)}
	}

	plan := &Plan{Replacements: make([]Replacement, 0, len(aligned))}
	for n, slot := range aligned {
		if slot.Kind == ResourceKindFiller {
			plan.Kept = append(plan.Kept, placeholders[n])
			continue
		}
		if len(slot.Data) == 0 {
			return nil, &MergeError{Kind: MergeErrorKindInvalidResource, Index: slot.Index, Err: errors.New("empty payload")}
		}
		if !images.IsImage(slot.Data) {
			return nil, &MergeError{Kind: MergeErrorKindInvalidResource, Index: slot.Index, Err: images.ErrNotImage}
		}
		if verify != nil {
			if err := verify(slot.Data); err != nil {
				return nil, &MergeError{Kind: MergeErrorKindInvalidResource, Index: slot.Index, Err: err}
			}
		}
		plan.Replacements = append(plan.Replacements, Replacement{
			Section:  placeholders[n],
			Resource: slot.Index,
			Data:     slot.Data,
		})
	}
	return plan, nil
}

// Result of AttemptMerge. Data is always usable: it is either merged book or
// original book bytes.
type Result struct {
	Data   []byte
	Merged bool
	Plan   *Plan
}

// AttemptMerge merges sidecar resources into book. Inputs are never
// modified. On any error Result carries original book bytes, so caller may
// fall back to unmerged book.
func AttemptMerge(book *Book, sidecar []byte, opts ...Option) (*Result, error) {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}

	res := &Result{Data: book.Payload()}

	if book.Encrypted() {
		return res, &pdb.FormatError{Kind: pdb.FormatErrorKindEncrypted, CryptoType: book.CryptoType}
	}
	if len(sidecar) == 0 {
		return res, &MergeError{Kind: MergeErrorKindSidecarAbsent}
	}

	placeholders, err := book.Placeholders()
	if err != nil {
		return res, err
	}
	sc, err := LoadSidecar(sidecar)
	if err != nil {
		return res, fmt.Errorf("unable to load sidecar: %w", err)
	}
	plan, err := BuildPlan(placeholders, sc.Entries, o.verify)
	if err != nil {
		return res, err
	}
	data, err := book.Container.Rebuild(plan.Records())
	if err != nil {
		return res, fmt.Errorf("unable to rebuild book: %w", err)
	}
	return &Result{Data: data, Merged: true, Plan: plan}, nil
}
