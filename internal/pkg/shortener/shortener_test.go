package shortener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeID(t *testing.T) {
	tests := []struct {
		name     string
		id       uint
		expected string
	}{
		{"Zero", 0, "0"},
		{"Single digit", 7, "7"},
		{"First letter", 10, "a"},
		{"Base boundary", 62, "10"},
		{"Large ID", 123456789, "8m0Kx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeID(tt.id))
		})
	}
}

func TestDecodeID_RoundTrip(t *testing.T) {
	for _, id := range []uint{0, 1, 61, 62, 1000, 999999, 123456789} {
		assert.Equal(t, id, DecodeID(EncodeID(id)))
	}
}

func TestDecodeID_SkipsInvalidCharacters(t *testing.T) {
	assert.Equal(t, DecodeID("8m0Kx"), DecodeID("8m-0K_x"))
}

func TestGenerateSecureSlug(t *testing.T) {
	slug, err := GenerateSecureSlug(16)
	require.NoError(t, err)
	assert.Len(t, slug, 16)

	other, err := GenerateSecureSlug(16)
	require.NoError(t, err)
	assert.NotEqual(t, slug, other)

	_, err = GenerateSecureSlug(0)
	assert.Error(t, err)
}
