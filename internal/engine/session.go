package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/rules"
)

// DefaultAutoMoveLimit bounds the automoves applied after a single move.
const DefaultAutoMoveLimit = 1000

// Options configures a new session.
type Options struct {
	Seed int64
	// Deck replaces the shuffled deck. It must hold the variation's deck size.
	Deck []card.Card
	// AutoMoveLimit defaults to DefaultAutoMoveLimit when zero.
	AutoMoveLimit int
}

// Result is the outcome of a successful move.
type Result struct {
	Move      pile.Move
	AutoMoves []pile.Move
	Won       bool
}

// Session is one game of one variation.
type Session struct {
	mu sync.Mutex

	id            string
	rules         *rules.RuleSet
	table         *pile.Table
	seed          int64
	autoMoveLimit int
	logger        *slog.Logger

	moves     int
	autoMoves int
}

// NewSession deals a new game. Automoves are not run after the deal.
func NewSession(ctx context.Context, rs *rules.RuleSet, opts Options) (*Session, error) {
	table, err := rs.NewTable()
	if err != nil {
		return nil, fmt.Errorf("creating table for '%s': %w", rs.Name, err)
	}

	deck := opts.Deck
	if deck == nil {
		deck = rs.NewDeck(opts.Seed)
	}
	if err := rs.Deal(deck, table); err != nil {
		return nil, err
	}

	limit := opts.AutoMoveLimit
	if limit <= 0 {
		limit = DefaultAutoMoveLimit
	}

	id := uuid.NewString()
	s := &Session{
		id:            id,
		rules:         rs,
		table:         table,
		seed:          opts.Seed,
		autoMoveLimit: limit,
		logger:        ctxlog.FromContext(ctx).With("session", id, "variation", rs.Name),
	}
	s.logger.Info("Session dealt.", "seed", opts.Seed, "cards", table.Count())
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the shuffle seed the session was dealt with.
func (s *Session) Seed() int64 { return s.seed }

// RuleSet returns the variation being played.
func (s *Session) RuleSet() *rules.RuleSet { return s.rules }

// Counts returns the number of player moves and automoves applied so far.
func (s *Session) Counts() (moves, autoMoves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves, s.autoMoves
}

// AttemptMove validates and applies a player move, then runs automoves. A
// rejected move returns a *MoveError and leaves the table untouched. An
// *EngineFault is returned together with a Result holding what was applied.
func (s *Session) AttemptMove(ctx context.Context, source string, offset int, destination string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := pile.Move{Source: source, Offset: offset, Destination: destination}
	if err := s.apply(m); err != nil {
		s.logger.Debug("Move rejected.", "move", m.String(), "error", err)
		return nil, err
	}
	s.moves++
	s.logger.Debug("Move applied.", "move", m.String())

	res := &Result{Move: m}
	auto, err := s.runAutoMoves(ctx)
	res.AutoMoves = auto
	res.Won = s.rules.Won(s.table)
	if res.Won {
		s.logger.Info("Game won.", "moves", s.moves, "automoves", s.autoMoves)
	}
	return res, err
}

// AutoMove runs automoves on demand.
func (s *Session) AutoMove(ctx context.Context) ([]pile.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runAutoMoves(ctx)
}

// Snapshot returns the current state of every container.
func (s *Session) Snapshot() pile.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Snapshot()
}

// Won reports whether the game is won.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Won(s.table)
}

// ClickTarget returns the move a single click on (source, offset) stands for.
func (s *Session) ClickTarget(source string, offset int) (pile.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.table.Container(source); !ok {
		return pile.Move{}, false
	}
	return s.rules.ClickTarget(s.table, source, offset)
}

// check runs every validation of m without changing the table.
func (s *Session) check(m pile.Move) error {
	src, ok := s.table.Container(m.Source)
	if !ok {
		return &MoveError{Reason: ErrNotMovable, Move: m, Detail: fmt.Sprintf("no container '%s'", m.Source)}
	}
	dst, ok := s.table.Container(m.Destination)
	if !ok {
		return &MoveError{Reason: ErrNotMovable, Move: m, Detail: fmt.Sprintf("no container '%s'", m.Destination)}
	}
	if !src.Exposed(m.Offset) {
		return &MoveError{Reason: ErrNotMovable, Move: m}
	}
	if src == dst {
		return &MoveError{Reason: ErrIllegalMove, Move: m, Detail: "source and destination are the same"}
	}
	if !s.rules.Legal(s.table, m) {
		return &MoveError{Reason: ErrIllegalMove, Move: m}
	}
	run, err := src.RunFrom(m.Offset)
	if err != nil {
		return &MoveError{Reason: ErrNotMovable, Move: m, Detail: err.Error()}
	}
	if !dst.CanAccept(run) {
		return &MoveError{Reason: ErrRejectedByContainer, Move: m}
	}
	return nil
}

// apply checks m and transfers the run.
func (s *Session) apply(m pile.Move) error {
	if err := s.check(m); err != nil {
		return err
	}
	if err := s.table.Transfer(m); err != nil {
		return &MoveError{Reason: ErrRejectedByContainer, Move: m, Detail: err.Error()}
	}
	return nil
}

// runAutoMoves applies automoves until none is left or the game is won.
// Callers hold s.mu.
func (s *Session) runAutoMoves(ctx context.Context) ([]pile.Move, error) {
	if !s.rules.AutoMoves {
		return nil, nil
	}

	var applied []pile.Move
	for !s.rules.Won(s.table) {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		m, ok := s.nextAutoMove()
		if !ok {
			break
		}
		if len(applied) >= s.autoMoveLimit {
			s.logger.Warn("Automoves did not settle.", "limit", s.autoMoveLimit, "next", m.String())
			return applied, &EngineFault{Limit: s.autoMoveLimit, Applied: applied}
		}
		if err := s.table.Transfer(m); err != nil {
			return applied, fmt.Errorf("applying automove %s: %w", m, err)
		}
		applied = append(applied, m)
		s.autoMoves++
		s.logger.Debug("Automove applied.", "move", m.String())
	}
	return applied, nil
}

// nextAutoMove enumerates containers in declaration order and offsets
// ascending, and returns the first proposed move that passes every check.
func (s *Session) nextAutoMove() (pile.Move, bool) {
	for _, c := range s.table.Containers() {
		for off := 0; off < c.Len(); off++ {
			if !c.Exposed(off) {
				continue
			}
			dest, ok := s.rules.AutoMoveTarget(s.table, c, off)
			if !ok {
				continue
			}
			m := pile.Move{Source: c.Name(), Offset: off, Destination: dest}
			if err := s.check(m); err != nil {
				s.logger.Debug("Automove candidate skipped.", "move", m.String(), "error", err)
				continue
			}
			return m, true
		}
	}
	return pile.Move{}, false
}
