package resources

import (
	"time"

	"github.com/rs/zerolog"
)

// UsageReport compares usage at the start and the end of a run.
type UsageReport struct {
	Start   ResourceUsage
	End     ResourceUsage
	Elapsed time.Duration
}

// HeapDeltaMB is the change in allocated heap over the run.
func (r UsageReport) HeapDeltaMB() int64 {
	return r.End.AllocMB - r.Start.AllocMB
}

// UsageMonitor samples resource usage around one pipeline run.
type UsageMonitor struct {
	logger       zerolog.Logger
	memoryWarnMB int64
	sample       func() ResourceUsage
	now          func() time.Time

	start     ResourceUsage
	startTime time.Time
}

// NewUsageMonitor creates a monitor. memoryWarnMB <= 0 disables the heap warning.
func NewUsageMonitor(logger zerolog.Logger, memoryWarnMB int64) *UsageMonitor {
	return &UsageMonitor{
		logger:       logger.With().Str("module", "UsageMonitor").Logger(),
		memoryWarnMB: memoryWarnMB,
		sample:       func() ResourceUsage { return GetResourceUsage(DefaultCPUSampleInterval) },
		now:          time.Now,
	}
}

// Start records the baseline sample.
func (m *UsageMonitor) Start() {
	m.start = m.sample()
	m.startTime = m.now()
	m.logger.Debug().
		Int64("alloc_mb", m.start.AllocMB).
		Int64("system_mem_used_mb", m.start.SystemMemUsedMB).
		Msg("Resource usage at start")
}

// Finish samples again, logs the usage of the run and returns the report.
func (m *UsageMonitor) Finish() UsageReport {
	report := UsageReport{
		Start:   m.start,
		End:     m.sample(),
		Elapsed: m.now().Sub(m.startTime),
	}

	m.logger.Info().
		Int64("alloc_mb", report.End.AllocMB).
		Int64("heap_delta_mb", report.HeapDeltaMB()).
		Int64("sys_mb", report.End.SysMB).
		Int64("gc_count", report.End.GCCount-report.Start.GCCount).
		Int("goroutines", report.End.Goroutines).
		Int64("system_mem_used_mb", report.End.SystemMemUsedMB).
		Int64("system_mem_total_mb", report.End.SystemMemTotalMB).
		Float64("system_mem_percent", report.End.SystemMemUsedPercent).
		Float64("cpu_percent", report.End.CPUUsagePercent).
		Dur("elapsed", report.Elapsed).
		Msg("Resource usage")

	m.logWarnings(report.End)
	return report
}

func (m *UsageMonitor) logWarnings(usage ResourceUsage) {
	if m.memoryWarnMB > 0 && usage.AllocMB > m.memoryWarnMB {
		m.logger.Warn().
			Int64("current_mb", usage.AllocMB).
			Int64("threshold_mb", m.memoryWarnMB).
			Msg("Heap usage above threshold")
	}
}
