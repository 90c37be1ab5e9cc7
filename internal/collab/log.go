package collab

import (
	"github.com/starwake/simcore/internal/geom"
	"go.uber.org/zap"
)

// LogAudio stands in for a sound device in headless runs.
type LogAudio struct {
	Log *zap.Logger
}

func (a LogAudio) Play(cue string) error {
	a.Log.Debug("audio", zap.String("cue", cue))
	return nil
}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notify(text string, pos geom.Vec) {
	n.Log.Info("notify", zap.String("text", text), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
}

// BurstCounter tallies effect bursts by kind.
type BurstCounter map[string]int

func (c BurstCounter) Burst(kind string, _ geom.Vec, _ float64) {
	c[kind]++
}
