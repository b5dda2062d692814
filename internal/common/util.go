package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray zeroes b in place. Use it on passwords once they are sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
