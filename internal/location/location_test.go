package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_KnownCode(t *testing.T) {
	assert.Equal(t, "Гагарина 48/1", Normalize("gagarina"))
	assert.Equal(t, "Абдулхакима Исмаилова 51", Normalize("abdulhakima"))
	assert.Equal(t, "Гайдара Гаджиева 7Б", Normalize("gaydara"))
}

func TestNormalize_AllAndEmptyMeanNoFilter(t *testing.T) {
	assert.Equal(t, "", Normalize("all"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_UnknownCodePassesThroughVerbatim(t *testing.T) {
	assert.Equal(t, "somewhere-else", Normalize("somewhere-else"))
	// A full address used directly is also passed through untouched.
	assert.Equal(t, "Гагарина 48/1", Normalize("Гагарина 48/1"))
}
