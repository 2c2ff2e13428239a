package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameKey(t *testing.T) {
	require.Equal(t, "acme corp", NameKey("  ACME Corp\t"))
	require.Equal(t, NameKey("Acme"), NameKey(" acme "))
	require.Empty(t, NameKey("   "))
}

func TestContainsPattern(t *testing.T) {
	require.Equal(t, "%acme%", ContainsPattern(" Acme "))
	require.Equal(t, `%100\% fit%`, ContainsPattern("100% fit"))
	require.Equal(t, `%a\_b\\c%`, ContainsPattern(`a_b\c`))
}

func TestOptionalString(t *testing.T) {
	require.Nil(t, OptionalString("  "))
	value := OptionalString(" id-1 ")
	require.NotNil(t, value)
	require.Equal(t, "id-1", *value)
}

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
}
