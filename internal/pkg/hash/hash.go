package hash

// Hash hashes a secret and verifies plaintext input against a stored hash.
type Hash interface {
	// Hash returns the hashed representation of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
