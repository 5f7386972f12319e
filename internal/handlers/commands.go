package handlers

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-pad/internal/input"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsPress   wsCommand = "d"
	wsRelease wsCommand = "u"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsReset   wsCommand = "r"
)

var commandNargs = map[wsCommand]int{
	wsNoop:    0,
	wsPress:   1,
	wsRelease: 1,
	wsOpen:    1,
	wsFlag:    1,
	wsReset:   0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
	ErrBadIndex       = errors.New("cell index must be an int")
)

type command struct {
	kind   wsCommand
	button input.Button
	index  int
	// err is set for lines that could not be parsed; the loop reports it
	// back to the client.
	err error
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseCommand(line string) command {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{err: ErrUnknownCommand}
	}

	kind := wsCommand(parts[0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return command{err: fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])}
	}
	if nargs != len(parts)-1 {
		return command{err: ErrBadArgs}
	}

	c := command{kind: kind}
	switch kind {
	case wsPress, wsRelease:
		b, err := input.ParseButton(parts[1])
		if err != nil {
			return command{err: err}
		}
		c.button = b
	case wsOpen, wsFlag:
		i, err := strconv.Atoi(parts[1])
		if err != nil {
			return command{err: ErrBadIndex}
		}
		c.index = i
	}
	return c
}
