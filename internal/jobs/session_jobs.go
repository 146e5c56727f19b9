package jobs

import (
	"errors"
	"time"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
)

// sessionExpiryWarning is how far ahead of expiry the user is warned
const sessionExpiryWarning = 10 * time.Minute

// CheckSessionExpiry warns when the access token is about to expire or already has
func (jr *JobRunner) CheckSessionExpiry() {
	jr.runWithRecovery("CheckSessionExpiry", func() {
		expiry, err := jr.session.AccessTokenExpiry()
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				logger.Warn("No usable session, sign in again", "error", err)
				return
			}
			logger.Error("Failed to read session expiry", "error", err)
			return
		}
		if expiry.IsZero() {
			return
		}

		remaining := expiry.Sub(jr.now())
		if remaining <= sessionExpiryWarning {
			logger.Warn("Session expires soon", "expires_at", expiry.UTC().Format(time.RFC3339), "remaining", remaining.Round(time.Second))
		}
	})
}
