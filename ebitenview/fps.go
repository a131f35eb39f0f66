package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsLine formats the current FPS and TPS for the debug corner.
func fpsLine() string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}
