package resources

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultCPUSampleInterval is how long cpu.Percent samples for.
const DefaultCPUSampleInterval = 100 * time.Millisecond

// ResourceUsage represents current process and system resource usage
type ResourceUsage struct {
	AllocMB              int64   // Currently allocated heap
	SysMB                int64   // Memory obtained from the OS by the Go runtime
	Goroutines           int     // Number of goroutines
	GCCount              int64   // Number of completed GC cycles
	SystemMemUsedMB      int64   // System memory used
	SystemMemTotalMB     int64   // Total system memory
	SystemMemUsedPercent float64 // System memory used percentage
	CPUUsagePercent      float64 // System-wide CPU usage percentage
}

// GetResourceUsage returns current resource usage statistics. System figures
// stay zero when gopsutil cannot read them on this platform.
func GetResourceUsage(cpuSample time.Duration) ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
		GCCount:    int64(m.NumGC),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedMB = int64(vmStat.Used / 1024 / 1024)
		usage.SystemMemTotalMB = int64(vmStat.Total / 1024 / 1024)
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}

	if cpuSample > 0 {
		if cpuPercents, err := cpu.Percent(cpuSample, false); err == nil && len(cpuPercents) > 0 {
			usage.CPUUsagePercent = cpuPercents[0]
		}
	}

	return usage
}
