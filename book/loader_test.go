package book

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parsing a well formed tree", func(t *testing.T) {
		raw := map[string]any{
			"move": nil,
			"children": map[string]any{
				"e4": map[string]any{
					"move":    "e4",
					"comment": "King's pawn",
					"children": map[string]any{
						"e5": map[string]any{"move": "e5", "frequency": 0.7, "children": map[string]any{}},
						"c5": map[string]any{"move": "c5", "frequency": 0.3, "isEndOfVariation": true},
					},
				},
			},
		}

		root, err := Parse(raw)

		require.NoError(t, err)
		require.Equal(t, "", root.Move(), "Root should carry the null sentinel")
		e4, ok := root.Child("e4")
		require.True(t, ok)
		require.Equal(t, "e4", e4.Move())
		require.Equal(t, "King's pawn", e4.Annotation())
		e5, _ := e4.Child("e5")
		weight, ok := e5.Weight()
		require.True(t, ok)
		require.Equal(t, 0.7, weight)
		c5, _ := e4.Child("c5")
		require.True(t, c5.Terminal())
		require.True(t, c5.IsLeaf(), "Missing children should mean no children")
	})

	t.Run("rejecting input that is not a record", func(t *testing.T) {
		for _, raw := range []any{nil, "tree", 42, []any{}} {
			root, err := Parse(raw)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr, "Should reject %v", raw)
			require.Nil(t, root, "No partial tree should be returned")
		}
	})

	t.Run("failing the whole parse on a malformed descendant", func(t *testing.T) {
		raw := map[string]any{
			"move": nil,
			"children": map[string]any{
				"e4": map[string]any{
					"move": "e4",
					"children": map[string]any{
						"e5": map[string]any{"move": "e5"},
						"c5": "not a node",
					},
				},
			},
		}

		root, err := Parse(raw)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, []string{"e4", "c5"}, verr.Path, "Should report where the bad node is")
		require.Nil(t, root)
	})

	t.Run("rejecting children that are not a record", func(t *testing.T) {
		_, err := Parse(map[string]any{"move": nil, "children": []any{"e4"}})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, err.Error(), "children is not a record")
	})

	t.Run("skipping an empty child label", func(t *testing.T) {
		root, err := Parse(map[string]any{"children": map[string]any{
			"":   map[string]any{"move": "x"},
			"e4": map[string]any{"move": "e4"},
		}})

		require.NoError(t, err, "An empty label should not fail the tree")
		require.Equal(t, []string{"e4"}, PossibleMoves(root), "Only labeled children should be kept")
	})

	t.Run("dropping unusable weights", func(t *testing.T) {
		for _, weight := range []any{1.5, -0.1, "0.7", true} {
			root, err := Parse(map[string]any{"frequency": weight})

			require.NoError(t, err, "Weight %v should be dropped, not rejected", weight)
			_, ok := root.Weight()
			require.False(t, ok, "Weight %v should be absent", weight)
			require.Equal(t, DefaultWeight, root.EffectiveWeight())
		}
	})

	t.Run("keeping boundary weights", func(t *testing.T) {
		for _, weight := range []any{0.0, 1, 1.0} {
			root, err := Parse(map[string]any{"frequency": weight})

			require.NoError(t, err)
			_, ok := root.Weight()
			require.True(t, ok, "Weight %v should be kept", weight)
		}
	})

	t.Run("setting terminal only when explicitly true", func(t *testing.T) {
		for _, flag := range []any{"true", 1, false, nil} {
			root, err := Parse(map[string]any{"isEndOfVariation": flag})

			require.NoError(t, err)
			require.False(t, root.Terminal(), "Flag %v should not mark the node terminal", flag)
		}
	})

	t.Run("coercing move values to strings", func(t *testing.T) {
		root, err := Parse(map[string]any{"move": 4.0})

		require.NoError(t, err)
		require.Equal(t, "4", root.Move())
	})

	t.Run("treating empty move values as the null sentinel", func(t *testing.T) {
		for _, move := range []any{false, 0, 0.0, ""} {
			root, err := Parse(map[string]any{"move": move})

			require.NoError(t, err)
			require.Equal(t, "", root.Move(), "Move %v should become the sentinel", move)
		}
	})

	t.Run("coercing composite comments instead of rejecting them", func(t *testing.T) {
		root, err := Parse(map[string]any{
			"comment":  []any{"sharp", "gambit"},
			"children": map[string]any{"e4": map[string]any{"comment": map[string]any{"a": 1}}},
		})

		require.NoError(t, err)
		require.Equal(t, "sharp,gambit", root.Annotation())
		e4, _ := root.Child("e4")
		require.NotEmpty(t, e4.Annotation(), "A record comment should still be coerced")
	})

	t.Run("dropping empty comments", func(t *testing.T) {
		for _, comment := range []any{false, 0, "", nil} {
			root, err := Parse(map[string]any{"comment": comment})

			require.NoError(t, err)
			require.Equal(t, "", root.Annotation(), "Comment %v should be dropped", comment)
		}
	})

	t.Run("accepting maps with interface keys", func(t *testing.T) {
		raw := map[any]any{
			"children": map[any]any{"d4": map[any]any{"move": "d4"}},
		}

		root, err := Parse(raw)

		require.NoError(t, err)
		require.True(t, IsLegalInTree(root, "d4"))
	})
}

func TestParseDocuments(t *testing.T) {
	jsonDoc := []byte(`{"move": null, "children": {"e4": {"move": "e4", "frequency": 0.6,
		"children": {"e5": {"move": "e5", "isEndOfVariation": true, "children": {}}}}}}`)
	yamlDoc := []byte(`
move: null
children:
  e4:
    move: e4
    frequency: 0.6
    children:
      e5:
        move: e5
        isEndOfVariation: true
        children: {}
`)

	fromJSON, err := ParseJSON(jsonDoc)
	require.NoError(t, err)
	fromYAML, err := ParseYAML(yamlDoc)
	require.NoError(t, err)

	require.Equal(t, TerminalPaths(fromJSON), TerminalPaths(fromYAML), "Both formats should produce the same lines")
	e4, _ := fromYAML.Child("e4")
	require.Equal(t, 0.6, e4.EffectiveWeight())

	_, err = ParseJSON([]byte(`{"move": `))
	require.Error(t, err, "Should surface decode errors")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("loading by extension", func(t *testing.T) {
		path := filepath.Join(dir, "tree.yml")
		require.NoError(t, os.WriteFile(path, []byte("children:\n  e4: {move: e4}\n"), 0644))

		root, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, []string{"e4"}, PossibleMoves(root))
	})

	t.Run("rejecting unknown extensions", func(t *testing.T) {
		path := filepath.Join(dir, "tree.txt")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("reporting missing files", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
