package jobs

import "carrental-client/internal/logger"

// CollectGarbage drops cache entries nobody observes that have been idle longer than gc_time
func (jr *JobRunner) CollectGarbage() {
	jr.runWithRecovery("CollectGarbage", func() {
		removed := jr.cache.CollectGarbage(jr.config.GCTime())
		if removed > 0 {
			logger.Info("Collected idle cache entries", "removed", removed, "remaining", jr.cache.Len())
		}
	})
}
