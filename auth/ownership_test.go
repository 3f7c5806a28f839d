package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanMutate(t *testing.T) {
	require.True(t, CanMutate(7, 7))
	require.False(t, CanMutate(7, 8))
	require.False(t, CanMutate(8, 7))
	// An orphaned resource (author deleted) is not mutable by anyone.
	require.False(t, CanMutate(0, 7))
}
