package input

import "time"

const (
	// TickRate is the update cadence the repeat delay is counted in.
	TickRate     = 60
	TickDuration = time.Second / TickRate
	// RepeatDelay is the number of ticks between auto-repeats of a held
	// directional button.
	RepeatDelay = 15
)

type ButtonState struct {
	Pressed          bool
	TicksUntilAction int
}

// Debouncer turns raw press/release events into actions, one state machine
// per button: Idle, or Held with a repeat countdown.
type Debouncer struct {
	buttons [NumButtons]ButtonState
}

func (d *Debouncer) State(b Button) ButtonState {
	return d.buttons[b]
}

func (d *Debouncer) Reset() {
	d.buttons = [NumButtons]ButtonState{}
}

// Edge records the button being pressed or released and returns the action
// fired by that transition. Repeating a state (pressed twice, released
// while up) is not an edge and fires nothing.
//
// panics on a button outside [0, NumButtons)
func (d *Debouncer) Edge(b Button, pressed bool) Action {
	s := &d.buttons[b]
	if s.Pressed == pressed {
		return None
	}
	p := Policies[b]

	if pressed {
		s.Pressed = true
		if p.Repeat {
			s.TicksUntilAction = RepeatDelay
		}
		if p.Trigger == OnPress {
			return p.Action
		}
		return None
	}

	*s = ButtonState{}
	if p.Trigger == OnRelease {
		return p.Action
	}
	return None
}

// Tick advances every held repeating button by one step and returns the
// actions whose countdown ran out, in button order.
func (d *Debouncer) Tick() (fired []Action) {
	for b := range NumButtons {
		s := &d.buttons[b]
		p := Policies[b]
		if !s.Pressed || !p.Repeat {
			continue
		}
		s.TicksUntilAction--
		if s.TicksUntilAction <= 0 {
			s.TicksUntilAction = RepeatDelay
			fired = append(fired, p.Action)
		}
	}
	return
}
