// Package input turns pointer primitives into move intents. The Mapper is a
// two-state machine: Idle, or Selecting a run picked up by a Press.
package input

import (
	"context"
	"time"

	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/pile"
)

// Primitive is a pointer event kind.
type Primitive int

const (
	Press Primitive = iota
	Click
	Release
)

func (p Primitive) String() string {
	switch p {
	case Press:
		return "press"
	case Click:
		return "click"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Point is a position in the renderer's coordinate space.
type Point struct {
	X, Y int
}

// Event is one pointer primitive.
type Event struct {
	Primitive Primitive
	At        Point
	Time      time.Time
}

// EmptyArea is the Hit offset of a point over a container but not over a card.
const EmptyArea = -1

// Hit is the container and card offset under a point.
type Hit struct {
	Container string
	Offset    int
}

// HitTester maps points to containers. The renderer implements it.
type HitTester interface {
	HitTest(p Point) (Hit, bool)
}

// Mover is the part of a session the mapper drives.
type Mover interface {
	AttemptMove(ctx context.Context, source string, offset int, destination string) (*engine.Result, error)
	ClickTarget(source string, offset int) (pile.Move, bool)
}

// State is the mapper state.
type State int

const (
	Idle State = iota
	Selecting
)

func (s State) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Outcome reports what an event did. Intent is nil when the event produced
// no move; otherwise Result or Err holds the engine's answer.
type Outcome struct {
	Intent *pile.Move
	Result *engine.Result
	Err    error
}

// Mapper is the input state machine. It is not safe for concurrent use; one
// pointer feeds one mapper.
type Mapper struct {
	hits  HitTester
	mover Mover

	state     State
	selection Hit
}

// NewMapper creates an idle mapper.
func NewMapper(hits HitTester, mover Mover) *Mapper {
	return &Mapper{hits: hits, mover: mover}
}

// State returns the current state.
func (m *Mapper) State() State { return m.state }

// Selection returns the selected run while Selecting.
func (m *Mapper) Selection() (Hit, bool) {
	return m.selection, m.state == Selecting
}

// Handle feeds one event through the state machine. A Release over the
// selection's own container emits no move, since a plain click arrives as
// Press, Release and then Click.
func (m *Mapper) Handle(ctx context.Context, ev Event) Outcome {
	logger := ctxlog.FromContext(ctx)
	hit, overContainer := m.hits.HitTest(ev.At)
	logger.Debug("Input event.", "primitive", ev.Primitive.String(), "x", ev.At.X, "y", ev.At.Y, "state", m.state.String(), "container", hit.Container, "offset", hit.Offset)

	switch ev.Primitive {
	case Press:
		if m.state == Selecting {
			logger.Debug("Selection aborted by a new press.", "container", m.selection.Container)
		}
		if overContainer && hit.Offset != EmptyArea {
			// Exposure is the engine's call; a face-down pick fails on release.
			m.state, m.selection = Selecting, hit
		} else {
			m.reset()
		}
		return Outcome{}

	case Release:
		if m.state != Selecting {
			return Outcome{}
		}
		sel := m.selection
		m.reset()
		if !overContainer {
			if target, ok := m.mover.ClickTarget(sel.Container, sel.Offset); ok {
				return m.attempt(ctx, target)
			}
			return Outcome{}
		}
		if hit.Container == sel.Container {
			return Outcome{}
		}
		return m.attempt(ctx, pile.Move{Source: sel.Container, Offset: sel.Offset, Destination: hit.Container})

	case Click:
		if m.state != Idle || !overContainer {
			return Outcome{}
		}
		if target, ok := m.mover.ClickTarget(hit.Container, hit.Offset); ok {
			return m.attempt(ctx, target)
		}
		return Outcome{}
	}
	return Outcome{}
}

func (m *Mapper) attempt(ctx context.Context, mv pile.Move) Outcome {
	res, err := m.mover.AttemptMove(ctx, mv.Source, mv.Offset, mv.Destination)
	return Outcome{Intent: &mv, Result: res, Err: err}
}

func (m *Mapper) reset() {
	m.state, m.selection = Idle, Hit{}
}
