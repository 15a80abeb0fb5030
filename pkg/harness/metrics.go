/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package harness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ava_run_duration_seconds",
			Help:    "Time taken to run one test across all devices",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ava_runs_total",
			Help: "Total number of orchestrated runs",
		},
		[]string{"status"}, // pass, fail, fatal
	)

	outcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ava_device_outcomes_total",
			Help: "Total number of per-device test outcomes",
		},
		[]string{"status"}, // pass, soft_fail, timeout, fatal
	)

	devicesDiscovered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ava_run_devices",
			Help: "Number of devices discovered for the last run",
		},
	)
)
