// Package maintenance runs the periodic housekeeping jobs: pruning expired
// rate-limit windows and re-reading the environment so roster and limit
// changes take effect without a restart.
package maintenance

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"polydoc.ai/translate-api-gateway/app/domain/ratelimit"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

type MaintenanceCrontabService struct {
	limiter ratelimit.Limiter
}

func NewService(limiter ratelimit.Limiter) *MaintenanceCrontabService {
	return &MaintenanceCrontabService{limiter: limiter}
}

func (ms *MaintenanceCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	// Every 2 minutes.
	ctab.AddJob("*/2 * * * *", func() {
		ms.PruneLimiterWindows(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

// PruneLimiterWindows bounds the in-memory limiter's map. The redis backend
// expires its own keys, so there is nothing to do for it.
func (ms *MaintenanceCrontabService) PruneLimiterWindows(ctx context.Context) {
	memoryLimiter, ok := ms.limiter.(*ratelimit.MemoryLimiter)
	if !ok {
		return
	}
	if dropped := memoryLimiter.Prune(time.Now()); dropped > 0 {
		logger.GetLogger().Infof("pruned %d expired rate-limit windows", dropped)
	}
}
