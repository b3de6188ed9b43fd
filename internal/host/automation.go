package host

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cwbudde/algo-fx/dsp/kernel"
)

// Action is what an automation Event does to the kernel.
type Action int

const (
	// ActionRamp calls StartRamp with Value over RampFrames frames.
	ActionRamp Action = iota
	// ActionSet calls SetParameter with Value.
	ActionSet
	// ActionStart calls Start.
	ActionStart
	// ActionStop calls Stop.
	ActionStop
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionRamp:
		return "ramp"
	case ActionSet:
		return "set"
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Event is one scheduled control change. Frame is the render position at
// which it becomes due.
type Event struct {
	Frame      int64
	Action     Action
	Address    kernel.Address
	Value      float32
	RampFrames int
}

// Apply performs e on k.
func (e Event) Apply(k kernel.Kernel) {
	switch e.Action {
	case ActionRamp:
		k.StartRamp(e.Address, e.Value, e.RampFrames)
	case ActionSet:
		k.SetParameter(e.Address, e.Value)
	case ActionStart:
		k.Start()
	case ActionStop:
		k.Stop()
	}
}

// RunAutomation is the control goroutine. It applies each event once the
// render position reaches its frame and returns when all events are applied
// or ctx is done. Events are applied in frame order; ties keep input order.
func (h *Host) RunAutomation(ctx context.Context, events []Event) error {
	pending := slices.Clone(events)
	slices.SortStableFunc(pending, func(a, b Event) int {
		switch {
		case a.Frame < b.Frame:
			return -1
		case a.Frame > b.Frame:
			return 1
		default:
			return 0
		}
	})

	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	for len(pending) > 0 {
		pos := h.Position()
		for len(pending) > 0 && pending[0].Frame <= pos {
			pending[0].Apply(h.k)
			pending = pending[1:]
		}

		if len(pending) == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}
