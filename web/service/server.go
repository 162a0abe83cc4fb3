package service

import (
	"librairie/logger"
	"librairie/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService reports host and catalog status for the admin dashboard.
type ServerService struct {
	bookService BookService
	userService UserService
}

// GetStatus collects a point-in-time snapshot. Individual probe failures are
// logged and leave the corresponding field at zero.
func (s *ServerService) GetStatus() *entity.ServerStatus {
	status := &entity.ServerStatus{}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.MemUsed = memInfo.Used
		status.MemTotal = memInfo.Total
	}

	if upTime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	if count, err := s.bookService.CountBooks(); err != nil {
		logger.Warning("count books failed:", err)
	} else {
		status.BookCount = count
	}

	if count, err := s.userService.CountUsers(); err != nil {
		logger.Warning("count users failed:", err)
	} else {
		status.UserCount = count
	}

	return status
}
