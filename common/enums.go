// Package common keeps enums shared by the container core and command line
// layer, so neither has to import the other.
package common

// Kind of output container selected by book headers.
// ENUM(replica, modern, legacy)
type OutputKind int

// Ext returns file extension (with leading dot) for the output kind.
func (o OutputKind) Ext() string {
	switch o {
	case OutputKindReplica:
		return ".azw4"
	case OutputKindModern:
		return ".azw3"
	case OutputKindLegacy:
		return ".mobi"
	default:
		// this should never happen
		panic("unsupported output kind requested")
	}
}
