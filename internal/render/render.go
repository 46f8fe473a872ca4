// Package render draws table snapshots as text and maps grid points back to
// containers. Each container is one row of output; a point's X is the
// container's position in the snapshot and its Y is the card offset.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/input"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
	"github.com/specialistvlad/solitaire/modules/textview"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Renderer renders snapshots of one variation.
type Renderer struct {
	out      io.Writer
	title    string
	types    map[string]*pile.ContainerType
	describe map[string]textview.DescribeFunc

	red, black, hidden, dim *color.Color

	// lens holds the container sizes of the last rendered snapshot.
	lens  []int
	names []string
}

// New creates a renderer for rs. Describe lines come from the registry when
// the textview module is loaded; containers without one show their name.
func New(out io.Writer, mode string, reg *registry.Registry, rs *rules.RuleSet) (*Renderer, error) {
	enabled, err := colorEnabled(out, mode)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		out:      out,
		title:    rs.Name,
		types:    make(map[string]*pile.ContainerType),
		describe: make(map[string]textview.DescribeFunc),
		red:      color.New(color.FgRed, color.Bold),
		black:    color.New(color.Bold),
		hidden:   color.New(color.FgHiBlack),
		dim:      color.New(color.Faint),
	}
	for _, c := range []*color.Color{r.red, r.black, r.hidden, r.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, typ := range rs.ContainerTypes() {
		r.types[typ.Name] = typ
		if reg == nil {
			continue
		}
		if fn, err := registry.Resolve(reg, typ.Variant, textview.OpDescribe); err == nil {
			r.describe[typ.Name] = fn
		}
	}
	return r, nil
}

func colorEnabled(out io.Writer, mode string) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid color mode '%s', want one of: auto, always, never", mode)
	}
}

// Render writes snap and remembers its geometry for HitTest.
func (r *Renderer) Render(snap pile.Snapshot) error {
	r.lens = r.lens[:0]
	r.names = r.names[:0]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.black.Sprint(r.title))
	for x, p := range snap {
		r.lens = append(r.lens, len(p.Cards))
		r.names = append(r.names, p.Name)

		fmt.Fprintf(&b, "%2d %s", x, r.dim.Sprintf("%-18s", r.header(x, p)))
		for _, c := range p.Cards {
			b.WriteByte(' ')
			b.WriteString(r.token(c))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) header(index int, p pile.PileView) string {
	fn, ok := r.describe[p.Type]
	typ := r.types[p.Type]
	if !ok || typ == nil {
		return p.Name
	}
	c := pile.NewContainer(p.Name, index, typ)
	if err := c.Push(p.Cards...); err != nil {
		return p.Name
	}
	return fn(c)
}

// token renders one card in a fixed three-column cell.
func (r *Renderer) token(c card.Card) string {
	if !c.FaceUp() {
		return r.hidden.Sprint("###")
	}
	s := fmt.Sprintf("%3s", c.Rank.String()+c.Suit.Symbol())
	if c.Red() {
		return r.red.Sprint(s)
	}
	return r.black.Sprint(s)
}

// HitTest maps a grid point of the last rendered snapshot to a container.
// Points past the top card of a container hit its empty area.
func (r *Renderer) HitTest(p input.Point) (input.Hit, bool) {
	if p.X < 0 || p.X >= len(r.lens) || p.Y < 0 {
		return input.Hit{}, false
	}
	hit := input.Hit{Container: r.names[p.X], Offset: p.Y}
	if p.Y >= r.lens[p.X] {
		hit.Offset = input.EmptyArea
	}
	return hit, true
}
