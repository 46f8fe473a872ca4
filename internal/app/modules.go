package app

import (
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/modules/freecell"
	"github.com/specialistvlad/solitaire/modules/klondike"
	"github.com/specialistvlad/solitaire/modules/textview"
)

// coreModules is the list of modules compiled into the solitaire binary.
var coreModules = []registry.Module{
	&klondike.Module{},
	&freecell.Module{},
	&textview.Module{},
}

// CoreModules returns a copy of the built-in module list.
func CoreModules() []registry.Module {
	return append([]registry.Module(nil), coreModules...)
}
