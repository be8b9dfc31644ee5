// Package cryptids generates random identifiers from crypto/rand.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

var (
	IDAlphabet = "bcdfghjklmnpqrstvwxyZBCDFGHJKLMNPQRSTVWXYZ0123456789"
	IDLength   = 18

	TokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	TokenLength   = 48
)

// GenerateID creates a random string from defaults
func GenerateID() (string, error) {
	return generateID(IDAlphabet, IDLength)
}

// GenerateToken creates a random bearer token.
func GenerateToken() (string, error) {
	return generateID(TokenAlphabet, TokenLength)
}

// GenerateCustomID creates a random string from the given alphabet and size
func GenerateCustomID(alphabet string, size int) (string, error) {
	return generateID(alphabet, size)
}

// generateID creates a random string ID with the given alphabet and length
func generateID(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return "", fmt.Errorf("alphabet must contain between 2 and 256 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	// smallest all-ones mask covering the alphabet; rejected bytes keep the
	// distribution uniform
	mask := 1
	for mask < len(alphabet)-1 {
		mask = (mask << 1) | 1
	}

	step := int(float64(size) * 1.6)
	if step < size {
		step = size
	}

	id := make([]byte, size)
	bytes := make([]byte, step)

	idIndex := 0
	for idIndex < size {
		if _, err := rand.Read(bytes); err != nil {
			return "", err
		}

		for i := 0; i < len(bytes) && idIndex < size; i++ {
			alphabetIndex := int(bytes[i]) & mask
			if alphabetIndex >= len(alphabet) {
				continue
			}

			id[idIndex] = alphabet[alphabetIndex]
			idIndex++
		}
	}

	return string(id), nil
}
