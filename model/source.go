package model

// Source is the provenance of a batch of items.
// Index is the ordinal used to tell internal from external duplicates;
// two distinct Source entries with the same Index count as the same origin.
type Source struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewSource creates a source.
func NewSource(index int, name string) *Source {
	return &Source{Index: index, Name: name}
}
