// Package autoload configures the global logger from the LOG_* environment
// on import:
//
//	import _ "github.com/tanpawarit/stockpilot/pkg/logger/autoload"
package autoload

import (
	configx "github.com/tanpawarit/stockpilot/pkg/config"
	logx "github.com/tanpawarit/stockpilot/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
