// Package job contains the scheduled background jobs run by the web server.
package job

import (
	"librairie/database"
	"librairie/database/model"
	"librairie/logger"
	"librairie/util/common"

	"go.uber.org/atomic"
)

const defaultLowStockThreshold = 3

// LowStockJob periodically reports catalog items whose stock fell below the
// threshold so the operator can restock.
type LowStockJob struct {
	threshold int
	running   atomic.Bool
}

func NewLowStockJob() *LowStockJob {
	return &LowStockJob{threshold: defaultLowStockThreshold}
}

func (j *LowStockJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)
	defer common.Recover("low stock check")

	db := database.GetDB()
	var books []*model.Book
	err := db.Model(model.Book{}).
		Where("stock < ?", j.threshold).
		Order("stock asc").
		Find(&books).
		Error
	if err != nil {
		logger.Warning("low stock check failed:", err)
		return
	}

	for _, book := range books {
		logger.Warningf("low stock: %q by %s has %d left", book.Title, book.Author, book.Stock)
	}
}
