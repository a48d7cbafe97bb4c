package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotation(t *testing.T) {
	t.Run("accepting algebraic moves", func(t *testing.T) {
		cases := map[string]string{
			"e4":     "e4",
			" Nf3 ":  "Nf3",
			"exd4":   "exd4",
			"Bb4+":   "Bb4+",
			"O-O":    "O-O",
			"0-0-0":  "O-O-O",
			"Nxe5!?": "Nxe5",
			"e8=Q#":  "e8=Q#",
			"Rad1":   "Rad1",
			"Qh5+!":  "Qh5+",
			"N1xd2":  "N1xd2",
			"cxd4":   "cxd4",
		}
		for input, expected := range cases {
			got, err := Notation{}.Normalize(input)

			require.NoError(t, err, "Should accept %q", input)
			require.Equal(t, expected, got)
		}
	})

	t.Run("rejecting malformed input", func(t *testing.T) {
		for _, input := range []string{"", "e9", "hello", "Ke", "i4", "O-O-O-O"} {
			_, err := Notation{}.Normalize(input)

			require.ErrorIs(t, err, ErrRejected, "Should reject %q", input)
		}
	})
}

func TestFunc(t *testing.T) {
	o := Func(func(input string) (string, error) { return input + "+", nil })

	got, err := o.Normalize("Bb5")

	require.NoError(t, err)
	require.Equal(t, "Bb5+", got)
}
