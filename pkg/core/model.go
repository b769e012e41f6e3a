// Package core defines the storage-agnostic contracts of the record layer:
// the Model interface every persistable entity satisfies, the factory shape
// used to reconstruct records from their serialized fields, and the shared
// delimiter and timestamp conventions of the flat-file format.
package core

// Flat-file format conventions. FieldSeparator splits a record line into
// its top-level fields; a semicolon-space pair rather than a comma so that
// captions and bios may contain commas. ListSeparator splits items inside a
// single list-valued field, such as an account's following list.
const (
	FieldSeparator = "; "
	ListSeparator  = " "
)

// TimeFormat is the fixed layout of every persisted timestamp, in UTC.
const TimeFormat = "2006-01-02 15:04:05"

// Model is the contract for records the flat-file store can persist.
// The type parameter is the concrete record type itself, so identity
// comparison is type-safe across entities.
type Model[T any] interface {
	// Serialize renders the record as an ordered field sequence. The result
	// must round-trip through the matching Factory.
	Serialize() []string

	// IsUpdatable reports whether a save replaces an existing record with
	// the same identity. Records that return false are append-only.
	IsUpdatable() bool

	// IsIDEqualTo reports identity equality, not full equality. It defines
	// what "the same record" means for upsert purposes.
	IsIDEqualTo(other T) bool
}

// Factory reconstructs a record from its serialized fields. It must fail
// with a *ParseError when the field count does not match the entity's
// expected arity.
type Factory[T any] func(fields []string) (T, error)
