package oracle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrRejected = errors.New("move rejected by legality oracle")

// Oracle turns raw learner input into a normalized move label, or rejects it.
// Whether the move is legal on the board is the oracle's business; the
// session only ever sees labels that passed it.
type Oracle interface {
	Normalize(input string) (string, error)
}

// Notation accepts anything shaped like a standard algebraic move. It does not
// know the position, so it cannot reject geometrically impossible moves.
type Notation struct{}

var san = regexp.MustCompile(`^(O-O(-O)?|[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h](x[a-h])?[1-8](=[QRBN])?)[+#]?$`)

func (Notation) Normalize(input string) (string, error) {
	move := strings.TrimSpace(input)
	move = strings.TrimRight(move, "!?")
	move = strings.ReplaceAll(move, "0", "O")

	if !san.MatchString(move) {
		return "", fmt.Errorf("%w: %q", ErrRejected, input)
	}
	return move, nil
}

// Func adapts a plain function to an Oracle.
type Func func(input string) (string, error)

func (f Func) Normalize(input string) (string, error) {
	return f(input)
}
