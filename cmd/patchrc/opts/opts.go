package opts

import (
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Patcher    patch.Patcher
	Logger     *log.Logger
	UserLogger *log.UserLogger
}
