package scan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
)

// runCountdown emits one tick per interval with the remaining count, then
// invokes the same stop transition a manual Stop would use. Cancelling ctx
// at any point suppresses further ticks and the auto-stop.
func (s *Session) runCountdown(ctx context.Context) {
	for remaining := s.scanSeconds; remaining > 0; remaining-- {
		logging.Debug("scan stopping soon", zap.Int("seconds_left", remaining))
		s.notifyTick(remaining)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.tick):
		}
	}

	if ctx.Err() != nil {
		return
	}

	logging.Info("scan timeout reached, stopping automatically")
	if err := s.Stop(); err != nil {
		logging.Error("failed to stop scan automatically", zap.Error(err))
	}
}
