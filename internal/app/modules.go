package app

import (
	"github.com/logos-core/lm/internal/registry"
	"github.com/logos-core/lm/modules/envvars"
	"github.com/logos-core/lm/modules/httpclient"
	"github.com/logos-core/lm/modules/printer"
	"github.com/logos-core/lm/modules/socketio"
)

// coreModules is the definitive list of all modules that are compiled into
// the lm binary.
var coreModules = []registry.Module{
	&envvars.Module{},
	&printer.Module{},
	&httpclient.Module{},
	&socketio.Module{},
}
