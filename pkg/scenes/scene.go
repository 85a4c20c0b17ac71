package scenes

import (
	"github.com/gonewx/lightsout/pkg/game"
)

// Scene is a type alias for game.Scene so scene implementations can be
// referenced without importing the game package.
type Scene = game.Scene

var (
	_ Scene         = (*BoardScene)(nil)
	_ game.Saveable = (*BoardScene)(nil)
)
