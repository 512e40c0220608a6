package app

import (
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/modules/env_vars"
	"github.com/specialistvlad/gridtask/modules/fs"
	"github.com/specialistvlad/gridtask/modules/greet"
	"github.com/specialistvlad/gridtask/modules/http_client"
	"github.com/specialistvlad/gridtask/modules/s3"
	"github.com/specialistvlad/gridtask/modules/socketio"
)

// coreModules is the definitive list of all modules that are compiled into
// the gridtask binary.
var coreModules = []registry.Module{
	&greet.Module{},
	&env_vars.Module{},
	&fs.Module{},
	&http_client.Module{},
	&s3.Module{},
	&socketio.Module{},
}
