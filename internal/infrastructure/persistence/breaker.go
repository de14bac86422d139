package persistence

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/resilience"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
)

// WriteBreakerName labels the storage breaker in logs and metrics
const WriteBreakerName = "storage"

// NewWriteBreaker creates the breaker guarding store writes. A full quota
// is the desktop's problem, not the store's, so it never trips the breaker.
// Share one breaker between all binders of a store.
func NewWriteBreaker(metrics *monitoring.Metrics, logger *zap.Logger) *resilience.Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("breaker")

	return resilience.New(WriteBreakerName, resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		Failure: func(err error) bool {
			return err != nil && !errors.Is(err, storage.ErrQuotaExceeded)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Storage breaker changed state",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if metrics != nil {
				metrics.SetBreakerState(name, int(to))
			}
		},
	})
}
