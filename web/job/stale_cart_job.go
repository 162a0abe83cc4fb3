package job

import (
	"librairie/logger"
	"librairie/util/common"
	"librairie/web/service"

	"go.uber.org/atomic"
)

const staleCartDays = 30

// StaleCartJob removes cart entries that have sat untouched for longer than
// staleCartDays, keeping the cart table from growing without bound.
type StaleCartJob struct {
	cartService service.CartService
	running     atomic.Bool
}

func NewStaleCartJob() *StaleCartJob {
	return new(StaleCartJob)
}

func (j *StaleCartJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)
	defer common.Recover("stale cart cleanup")

	removed, err := j.cartService.RemoveStaleItems(staleCartDays)
	if err != nil {
		logger.Warning("stale cart cleanup failed:", err)
		return
	}
	if removed > 0 {
		logger.Infof("stale cart cleanup removed %d entries", removed)
	}
}
