package domainutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "example.com", Normalize("  Example.COM "))
	assert.Equal(t, "", Normalize("   "))
}

func TestSLDLength(t *testing.T) {
	assert.Equal(t, 7, SLDLength("example.com"))
	assert.Equal(t, 1, SLDLength("X.org"))
	assert.Equal(t, 5, SLDLength("nodot"))
	assert.Equal(t, 0, SLDLength(""))
}

func TestParsePrice(t *testing.T) {
	v := ParsePrice("$2,195")
	require.NotNil(t, v)
	assert.Equal(t, 2195.0, *v)

	v = ParsePrice("$1,234.56")
	require.NotNil(t, v)
	assert.Equal(t, 1234.56, *v)

	assert.Nil(t, ParsePrice("Make Offer"))
	assert.Nil(t, ParsePrice(""))
	assert.Nil(t, ParsePrice("1.2.3"))
}
