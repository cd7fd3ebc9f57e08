package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEvidence(t *testing.T) {
	ext, err := ValidateEvidence("image/jpeg", 1024)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = ValidateEvidence("image/png", MaxEvidenceSize)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = ValidateEvidence("application/pdf", 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imágenes")

	_, err = ValidateEvidence("image/jpeg", MaxEvidenceSize+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6MB")
}
