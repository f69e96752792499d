// Figura
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package prometheus provides functions that are useful to control and manage
// the build-in prometheus instance.
package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrometheusListen is the address the metrics are served on when no
// other address is given.
const DefaultPrometheusListen = "127.0.0.1:9233"

// These are the values of the result label of the compile counter.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Prometheus is the struct that contains information about the
// prometheus instance. Run Init() on it.
type Prometheus struct {
	Listen string // the listen specification for the net/http server

	// Registerer is where the metrics are registered. It defaults to the
	// global registry, which is what the /metrics handler serves.
	Registerer prometheus.Registerer

	compileTotal            *prometheus.CounterVec // total of compiles that have run
	compileSeconds          prometheus.Histogram   // duration of each compile
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch

	server *http.Server
}

// Init some parameters - currently the Listen address.
func (obj *Prometheus) Init() error {
	if len(obj.Listen) == 0 {
		obj.Listen = DefaultPrometheusListen
	}
	if obj.Registerer == nil {
		obj.Registerer = prometheus.DefaultRegisterer
	}
	obj.compileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "figura_compile_total",
			Help: "Number of compiles that have run.",
		},
		// Labels for this metric.
		// result: success or failure
		[]string{"result"},
	)
	obj.compileSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "figura_compile_seconds",
			Help:    "Duration of a compile in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "figura_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)
	for _, c := range []prometheus.Collector{obj.compileTotal, obj.compileSeconds, obj.processStartTimeSeconds} {
		if err := obj.Registerer.Register(c); err != nil {
			return err
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	return nil
}

// Start runs a http server in a go routine, that responds to /metrics
// as prometheus would expect.
func (obj *Prometheus) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	obj.server = &http.Server{
		Addr:    obj.Listen,
		Handler: mux,
	}
	go obj.server.ListenAndServe()
	return nil
}

// Stop the http server.
func (obj *Prometheus) Stop() error {
	if obj.server == nil {
		return nil
	}
	return obj.server.Shutdown(context.Background())
}

// UpdateCompileTotal counts a compile with the given result.
func (obj *Prometheus) UpdateCompileTotal(result string) error {
	labels := prometheus.Labels{"result": result}
	metric := obj.compileTotal.With(labels)
	metric.Inc()
	return nil
}

// ObserveCompileSeconds records the duration of a compile.
func (obj *Prometheus) ObserveCompileSeconds(seconds float64) error {
	obj.compileSeconds.Observe(seconds)
	return nil
}
