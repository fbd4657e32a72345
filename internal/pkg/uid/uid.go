package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	// Generate returns a new int64 identifier.
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new string identifier.
	Generate() string
}
