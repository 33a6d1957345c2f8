package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("canonical values", func(t *testing.T) {
		for raw, want := range map[string]Status{
			"UNPAID":   StatusUnpaid,
			"cash":     StatusCash,
			"Transfer": StatusTransfer,
			" CASH ":   StatusCash,
		} {
			got, err := ParseStatus(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("legacy glyph values", func(t *testing.T) {
		for raw, want := range map[string]Status{
			"❌ Belum":    StatusUnpaid,
			"💵 Cash":     StatusCash,
			"💳 Transfer": StatusTransfer,
		} {
			got, err := ParseStatus(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		_, err := ParseStatus("maybe later")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("empty value rejected", func(t *testing.T) {
		_, err := ParseStatus("")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusUnpaid.Valid())
	assert.True(t, StatusCash.Valid())
	assert.True(t, StatusTransfer.Valid())
	assert.False(t, Status("💳 Transfer").Valid())
	assert.False(t, Status("").Valid())
}
