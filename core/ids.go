package core

import "math"

// ObjectID is the integer handle of one database object.
// IDs are assumed dense for matrix addressing, but may be sparse in kNN
// cache files. Negative values are not addressable on disk.
type ObjectID int32

// Undefined is the sentinel for "no object". Distance lookups involving it
// yield the configured undefined distance instead of an error.
const Undefined ObjectID = math.MinInt32

// Valid reports whether id is addressable in the on-disk cache formats.
func (id ObjectID) Valid() bool {
	return id >= 0
}
