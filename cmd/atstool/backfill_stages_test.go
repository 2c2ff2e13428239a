package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/lib/pipeline/stagelist"
)

func TestNormalizeStages(t *testing.T) {
	t.Run("empty pipeline is left alone", func(t *testing.T) {
		encoded, changed, err := normalizeStages("")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "", encoded)
	})

	t.Run("legacy stages get ids and dense order", func(t *testing.T) {
		stored := `[{"name":"Screen","order":4},{"name":"Applied","order":2}]`
		encoded, changed, err := normalizeStages(stored)
		require.NoError(t, err)
		assert.True(t, changed)

		list := stagelist.Decode(encoded)
		require.Len(t, list, 2)
		assert.Equal(t, "Applied", list[0].Name)
		assert.Equal(t, 1, list[0].Order)
		assert.Equal(t, stagelist.StableID("Applied"), list[0].ID)
		assert.Equal(t, "Screen", list[1].Name)
		assert.Equal(t, 2, list[1].Order)
	})

	t.Run("canonical pipeline is unchanged", func(t *testing.T) {
		canonical, err := stagelist.Encode(stagelist.Default())
		require.NoError(t, err)
		encoded, changed, err := normalizeStages(canonical)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, canonical, encoded)
	})
}
