package setup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleTwiceRestoresState(t *testing.T) {
	sel := NewSelection()

	on, err := sel.Toggle(3)
	require.NoError(t, err)
	require.True(t, on)
	require.True(t, sel.IsSelected(3))

	on, err = sel.Toggle(3)
	require.NoError(t, err)
	require.False(t, on)
	require.False(t, sel.IsSelected(3))
	require.Equal(t, 0, sel.Count())
}

func TestToggleRejectsUnknownSteps(t *testing.T) {
	sel := NewSelection()

	_, err := sel.Toggle(0)
	require.Error(t, err)
	_, err = sel.Toggle(8)
	require.Error(t, err)
	require.Equal(t, 0, sel.Count())
}

func TestSelectAllDeselectAll(t *testing.T) {
	sel := NewSelection()

	sel.SelectAll()
	require.Equal(t, StepCount(), sel.Count())
	for _, step := range Steps() {
		require.True(t, sel.IsSelected(step.ID))
	}

	sel.DeselectAll()
	require.Equal(t, 0, sel.Count())
}

func TestSelectionMapRoundTrip(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(1)
	sel.Toggle(5)

	saved := sel.Map()
	require.Equal(t, map[int]bool{1: true, 5: true}, saved)

	restored := NewSelection()
	restored.SetFrom(saved)
	require.True(t, restored.IsSelected(1))
	require.True(t, restored.IsSelected(5))
	require.Equal(t, 2, restored.Count())
}

func TestSetFromDropsUnknownSteps(t *testing.T) {
	sel := NewSelection()
	sel.SetFrom(map[int]bool{2: true, 42: true, 3: false})
	require.True(t, sel.IsSelected(2))
	require.False(t, sel.IsSelected(3))
	require.Equal(t, 1, sel.Count())
}
