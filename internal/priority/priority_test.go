package priority

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChoose_EmptyList(t *testing.T) {
	_, err := Choose(nil, nil)
	require.ErrorIs(t, err, ErrEmptyPriority)
}

func TestChoose_NoCurrent(t *testing.T) {
	got, err := Choose(nil, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, "a", got)
}

func TestChoose_CyclesToSuccessor(t *testing.T) {
	list := []string{"a", "b", "c"}
	cur := "a"

	got, err := Choose(&cur, list)
	require.NoError(t, err)
	require.Equal(t, "b", got)
}

func TestChoose_WrapsAround(t *testing.T) {
	list := []string{"a", "b", "c"}
	cur := "c"

	got, err := Choose(&cur, list)
	require.NoError(t, err)
	require.Equal(t, "a", got)
}

func TestChoose_CurrentNotInList(t *testing.T) {
	list := []string{"a", "b", "c"}
	cur := "z"

	got, err := Choose(&cur, list)
	require.NoError(t, err)
	require.Equal(t, "a", got)
}

func TestChoose_SingleElement(t *testing.T) {
	list := []string{"only"}
	cur := "only"

	got, err := Choose(&cur, list)
	require.NoError(t, err)
	require.Equal(t, "only", got)
}
