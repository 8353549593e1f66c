package shortener

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// 62 characters: 0-9, a-z, A-Z
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// EncodeID turns a numeric ID into a short base62 string, used for public
// collection share links.
func EncodeID(id uint) string {
	if id == 0 {
		return string(alphabet[0])
	}

	base := uint(len(alphabet))
	var encoded []byte
	for id > 0 {
		encoded = append(encoded, alphabet[id%base])
		id = id / base
	}

	// Reverse, digits were produced least significant first
	for i, j := 0, len(encoded)-1; i < j; i, j = i+1, j-1 {
		encoded[i], encoded[j] = encoded[j], encoded[i]
	}
	return string(encoded)
}

// DecodeID reverses EncodeID. Characters outside the alphabet are skipped.
func DecodeID(encoded string) uint {
	base := uint(len(alphabet))
	var id uint
	for i := 0; i < len(encoded); i++ {
		value := strings.IndexByte(alphabet, encoded[i])
		if value == -1 {
			continue
		}
		id = id*base + uint(value)
	}
	return id
}

// GenerateSecureSlug creates a cryptographically secure random base62 slug,
// used for archive object keys so delivery URLs are not guessable.
func GenerateSecureSlug(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid slug length: %d", length)
	}

	// Rejection sampling to avoid modulo bias.
	// 248 is the largest multiple of 62 below 256.
	const maxRandomByte = 248

	slug := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			slug[written] = alphabet[int(b)%len(alphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(slug), nil
}
