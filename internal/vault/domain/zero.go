package domain

// Zero overwrites a byte slice with zeros to clear key material from memory.
// Safe to call on nil.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
