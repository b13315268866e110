// Package debug renders binary structures as indented text for inspection.
package debug

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates lines indented by depth.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) pad(depth int) {
	tw.b.WriteString(strings.Repeat(indent, max(depth, 0)))
}

// Line writes formatted line.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Field writes "label: value" line.
func (tw *TreeWriter) Field(depth int, label string, value any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.b, "%s: %v\n", label, value)
}

// Quoted writes text value Go quoted, empty values are shown as "-".
func (tw *TreeWriter) Quoted(depth int, label, value string) {
	tw.Field(depth, label, quote(value))
}

// Hex writes at most limit first bytes of data as hex.
func (tw *TreeWriter) Hex(depth int, label string, data []byte, limit int) {
	s := hex.EncodeToString(data[:min(len(data), limit)])
	if len(data) > limit {
		s += "..."
	}
	tw.Field(depth, label, s)
}

func quote(raw string) string {
	if raw == "" {
		return "-"
	}
	return strconv.Quote(raw)
}
