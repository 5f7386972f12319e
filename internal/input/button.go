package input

import (
	"errors"
	"fmt"
	"strings"
)

// Button is a logical pad button. The order matches the pad layout the
// key maps are written against.
type Button int

const (
	Right Button = iota
	Left
	Up
	Down
	Reveal
	Flag
	Select
	Start
	NumButtons
)

var buttonNames = [NumButtons]string{
	Right:  "right",
	Left:   "left",
	Up:     "up",
	Down:   "down",
	Reveal: "reveal",
	Flag:   "flag",
	Select: "select",
	Start:  "start",
}

func (b Button) String() string {
	if b < 0 || b >= NumButtons {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

var ErrUnknownButton = errors.New("unknown button")

// ParseButton accepts a button name or its pad index.
func ParseButton(s string) (Button, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for b, name := range buttonNames {
		if s == name || s == fmt.Sprint(b) {
			return Button(b), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, s)
}

type Action int

const (
	None Action = iota
	MoveRight
	MoveLeft
	MoveUp
	MoveDown
	RevealCell
	FlagCell
	SelectPressed
	StartPressed
)

func (a Action) String() string {
	switch a {
	case MoveRight:
		return "move right"
	case MoveLeft:
		return "move left"
	case MoveUp:
		return "move up"
	case MoveDown:
		return "move down"
	case RevealCell:
		return "reveal"
	case FlagCell:
		return "flag"
	case SelectPressed:
		return "select"
	case StartPressed:
		return "start"
	default:
		return "none"
	}
}

type Trigger int

const (
	OnPress Trigger = iota
	OnRelease
)

// Policy says when a button fires and which action it fires.
type Policy struct {
	Trigger Trigger
	// Repeat re-fires the action every RepeatDelay ticks while held.
	Repeat bool
	Action Action
}

// Policies is the fixed policy table. Moves fire on press and auto-repeat;
// reveal and flag fire once on release. Select and start are not bound by
// the engine, their actions are handed back to the caller.
var Policies = [NumButtons]Policy{
	Right:  {Trigger: OnPress, Repeat: true, Action: MoveRight},
	Left:   {Trigger: OnPress, Repeat: true, Action: MoveLeft},
	Up:     {Trigger: OnPress, Repeat: true, Action: MoveUp},
	Down:   {Trigger: OnPress, Repeat: true, Action: MoveDown},
	Reveal: {Trigger: OnRelease, Action: RevealCell},
	Flag:   {Trigger: OnRelease, Action: FlagCell},
	Select: {Trigger: OnRelease, Action: SelectPressed},
	Start:  {Trigger: OnRelease, Action: StartPressed},
}
