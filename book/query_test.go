package book

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleTree builds:
//
//	e4 ─ e5 ─ Nf3 ─┬ Nc6 (terminal) ─ Bb5
//	               └ d6
//	   └ c5
func sampleTree(t *testing.T) *MoveNode {
	t.Helper()
	root, err := ParseYAML([]byte(`
children:
  e4:
    move: e4
    children:
      e5:
        move: e5
        children:
          Nf3:
            move: Nf3
            children:
              Nc6:
                move: Nc6
                isEndOfVariation: true
                children:
                  Bb5: {move: Bb5}
              d6: {move: d6}
      c5: {move: c5}
`))
	require.NoError(t, err)
	return root
}

func TestNavigateToPath(t *testing.T) {
	root := sampleTree(t)

	t.Run("matching a manual descent", func(t *testing.T) {
		lines := [][]string{{}, {"e4"}, {"e4", "e5"}, {"e4", "e5", "Nf3", "Nc6", "Bb5"}}
		for _, line := range lines {
			expected := root
			for _, move := range line {
				expected = expected.children[move]
			}

			got, ok := NavigateToPath(root, line)

			require.True(t, ok, "Line %v should exist", line)
			require.Same(t, expected, got, "Line %v should reach the same node", line)
		}
	})

	t.Run("stopping at the first missing label", func(t *testing.T) {
		got, ok := NavigateToPath(root, []string{"e4", "d5", "e5"})

		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("handling a nil root", func(t *testing.T) {
		_, ok := NavigateToPath(nil, nil)
		require.False(t, ok)
	})
}

func TestIsLegalInTree(t *testing.T) {
	root := sampleTree(t)
	e4, _ := root.Child("e4")

	require.True(t, IsLegalInTree(e4, "e5"))
	require.True(t, IsLegalInTree(e4, "c5"))
	require.False(t, IsLegalInTree(e4, "e4"), "Should only match direct children")
	require.False(t, IsLegalInTree(nil, "e4"))
}

func TestPossibleMoves(t *testing.T) {
	root := sampleTree(t)
	e4, _ := root.Child("e4")

	require.Equal(t, []string{"c5", "e5"}, PossibleMoves(e4), "Moves should be sorted")
	c5, _ := e4.Child("c5")
	require.Empty(t, PossibleMoves(c5))
}

func TestDepth(t *testing.T) {
	root := sampleTree(t)

	require.Equal(t, 5, Depth(root))
	e4, _ := root.Child("e4")
	c5, _ := e4.Child("c5")
	require.Equal(t, 0, Depth(c5), "Leaf should have depth 0")
}

func TestTerminalPaths(t *testing.T) {
	root := sampleTree(t)

	got := TerminalPaths(root)

	require.Equal(t, [][]string{
		{"e4", "c5"},
		{"e4", "e5", "Nf3", "Nc6"},
		{"e4", "e5", "Nf3", "d6"},
	}, got, "Should stop at terminal nodes even when they have children")

	e4, _ := root.Child("e4")
	c5, _ := e4.Child("c5")
	require.Equal(t, [][]string{{}}, TerminalPaths(c5), "A leaf is its own single empty line")
}

func TestChildrenIsACopy(t *testing.T) {
	root := sampleTree(t)

	children := root.Children()
	delete(children, "e4")

	require.True(t, IsLegalInTree(root, "e4"), "Mutating the copy should not change the tree")
}
