package utils

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	SystemCPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Host CPU usage percentage",
	})

	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_percent",
		Help: "Host memory usage percentage",
	})
)

// StartSystemMetrics samples host CPU and memory usage on an interval and
// exports them as gauges. Runs until the process exits.
func StartSystemMetrics(interval time.Duration) {
	go func() {
		for {
			if percentages, err := cpu.Percent(time.Second, false); err != nil {
				log.Printf("Error getting CPU usage: %v", err)
			} else if len(percentages) > 0 {
				SystemCPUUsage.Set(percentages[0])
			}

			if vm, err := mem.VirtualMemory(); err != nil {
				log.Printf("Error getting memory usage: %v", err)
			} else {
				SystemMemoryUsage.Set(vm.UsedPercent)
			}

			time.Sleep(interval)
		}
	}()
}
