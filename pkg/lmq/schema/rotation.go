package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// RotationEntry pairs a host with a queue. A list of entries is rotated
// over by the circle operations; inactive entries are skipped.
type RotationEntry struct {
	Host   int    `json:"host" yaml:"host"`
	Queue  string `json:"queue" yaml:"queue"`
	Active bool   `json:"active" yaml:"active"`
}

// RotationList is an ordered list of rotation entries
type RotationList []RotationEntry

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e RotationEntry) String() string {
	return stringify(e)
}

func (l RotationList) String() string {
	return stringify(l)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsActive reports whether the entry at index i is active
func (l RotationList) IsActive(i int) bool {
	return i >= 0 && i < len(l) && l[i].Active
}
