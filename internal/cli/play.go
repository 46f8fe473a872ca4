package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/input"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/render"
	"github.com/specialistvlad/solitaire/internal/storage"
)

const playHelp = `Commands:
  p X Y          press at column X, row Y
  r X Y          release at column X, row Y
  c X Y          click at column X, row Y
  m SRC OFF DST  move the run at SRC[OFF] onto DST
  a              run automoves
  h              show this help
  q              quit
`

var primitives = map[string]input.Primitive{
	"p": input.Press,
	"r": input.Release,
	"c": input.Click,
}

// game drives one session from typed commands.
type game struct {
	out      io.Writer
	session  *engine.Session
	renderer *render.Renderer
	mapper   *input.Mapper
}

func newPlayCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [variation]",
		Short: "Play a game on the terminal",
		Long:  "Play reads commands from standard input. Columns and rows refer to the\nprinted table.\n\n" + playHelp,
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.app()
			if err != nil {
				return err
			}
			variation := ""
			if len(args) == 1 {
				variation = args[0]
			}
			rs, err := a.RuleSet(variation)
			if err != nil {
				return err
			}
			store, err := e.store(a.Config())
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := a.Context()
			seed := seedFlag(cmd)
			s, err := a.NewSession(ctx, rs.Name, seed)
			if err != nil {
				return err
			}
			r, err := render.New(e.out, a.Config().Color, a.Registry(), rs)
			if err != nil {
				return err
			}

			g := &game{out: e.out, session: s, renderer: r, mapper: input.NewMapper(r, s)}
			started := time.Now()
			fmt.Fprintf(e.out, "seed %d, type h for help\n", seed)
			if err := g.run(ctx, e.in); err != nil {
				return err
			}

			moves, autoMoves := s.Counts()
			if moves == 0 {
				return nil
			}
			rec := storage.GameRecord{
				ID:         s.ID(),
				Variation:  rs.Name,
				Seed:       seed,
				Moves:      moves,
				AutoMoves:  autoMoves,
				Won:        s.Won(),
				StartedAt:  started,
				FinishedAt: time.Now(),
			}
			if err := store.RecordGame(ctx, rec); err != nil {
				return err
			}
			a.Logger().Info("Game recorded.", "session", s.ID(), "won", rec.Won, "moves", moves)
			return nil
		},
	}
	cmd.Flags().Int64("seed", 0, "Shuffle seed (default: time based)")
	return cmd
}

func (g *game) run(ctx context.Context, in io.Reader) error {
	if err := g.renderer.Render(g.session.Snapshot()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd := fields[0]; cmd {
		case "q", "quit":
			return nil
		case "h", "help", "?":
			fmt.Fprint(g.out, playHelp)
		case "p", "r", "c":
			err = g.pointer(ctx, primitives[cmd], fields[1:])
		case "m":
			err = g.move(ctx, fields[1:])
		case "a":
			applied, autoErr := g.session.AutoMove(ctx)
			err = g.report(&engine.Result{AutoMoves: applied}, autoErr)
		default:
			fmt.Fprintf(g.out, "unknown command %q, type h for help\n", cmd)
		}
		if err != nil {
			return err
		}
		if g.session.Won() {
			fmt.Fprintln(g.out, "🎉 Won!")
			return nil
		}
	}
	return scanner.Err()
}

func (g *game) pointer(ctx context.Context, p input.Primitive, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(g.out, "usage: p|r|c X Y")
		return nil
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		fmt.Fprintln(g.out, "X and Y must be numbers")
		return nil
	}

	out := g.mapper.Handle(ctx, input.Event{Primitive: p, At: input.Point{X: x, Y: y}, Time: time.Now()})
	if out.Intent == nil {
		if sel, ok := g.mapper.Selection(); ok {
			fmt.Fprintf(g.out, "selected %s[%d]\n", sel.Container, sel.Offset)
		}
		return nil
	}
	return g.report(out.Result, out.Err)
}

func (g *game) move(ctx context.Context, args []string) error {
	if len(args) != 3 {
		fmt.Fprintln(g.out, "usage: m SRC OFF DST")
		return nil
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(g.out, "OFF must be a number")
		return nil
	}
	res, err := g.session.AttemptMove(ctx, args[0], offset, args[2])
	return g.report(res, err)
}

// report prints the outcome of a move. Rejected moves and automove faults
// are shown to the player; anything else ends the game.
func (g *game) report(res *engine.Result, err error) error {
	var moveErr *engine.MoveError
	if errors.As(err, &moveErr) {
		fmt.Fprintf(g.out, "✗ %v\n", moveErr)
		return nil
	}

	var fault *engine.EngineFault
	switch {
	case errors.As(err, &fault):
		fmt.Fprintf(g.out, "⚠ %v\n", fault)
	case err != nil:
		return err
	}

	if res != nil {
		if res.Move != (pile.Move{}) {
			fmt.Fprintf(g.out, "move %s\n", res.Move)
		}
		for _, m := range res.AutoMoves {
			fmt.Fprintf(g.out, "auto %s\n", m)
		}
	}
	return g.renderer.Render(g.session.Snapshot())
}
