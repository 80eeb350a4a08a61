package app

import (
	"github.com/specialistvlad/calparse/internal/registry"
	"github.com/specialistvlad/calparse/modules/calinfo"
	"github.com/specialistvlad/calparse/modules/calresults"
)

// coreModules is the definitive list of calibration grammars compiled into
// the calparse binary.
var coreModules = []registry.Module{
	&calresults.Module{},
	&calinfo.Module{},
}
