package composition

import (
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/testutil"
	"github.com/specialistvlad/solitaire/modules/freecell"
	"github.com/specialistvlad/solitaire/modules/klondike"
	"github.com/specialistvlad/solitaire/modules/textview"
)

const golfLayout = `
variation "golf" {
  description = "Golf: build on the waste up or down, regardless of suit."
  decks       = 1

  container "stock" {
    kind      = "stock"
    face_down = true
  }

  container "waste" {
    kind = "waste"
  }

  container "tableau" {
    kind  = "tableau"
    count = 7
  }

  deal "tableau" {
    counts  = [for i in range(7) : 5]
    face_up = "all"
  }

  deal "stock" {
    rest = true
  }
}
`

// withCore returns the built-in modules followed by extra.
func withCore(extra ...registry.Module) []registry.Module {
	return append([]registry.Module{&klondike.Module{}, &freecell.Module{}, &textview.Module{}}, extra...)
}

// golfModule ships the golf layout and registers with fn.
func golfModule(fn func(r *registry.Registry) error) *testutil.Module {
	return &testutil.Module{
		ModuleName: "golf",
		Files:      testutil.Layouts(map[string]string{"golf.hcl": golfLayout}),
		Fn:         fn,
	}
}
