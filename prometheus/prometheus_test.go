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

//go:build !root

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestCompileMetrics tests that the compile metrics are registered and that
// they count what they are given.
func TestCompileMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	prom := &Prometheus{
		Registerer: registry,
	}
	if err := prom.Init(); err != nil {
		t.Errorf("init failed: %+v", err)
		return
	}
	prom.UpdateCompileTotal(ResultSuccess)
	prom.UpdateCompileTotal(ResultSuccess)
	prom.UpdateCompileTotal(ResultFailure)
	prom.ObserveCompileSeconds(0.01)

	metrics, err := registry.Gather()
	if err != nil {
		t.Errorf("error while gathering metrics: %s", err)
		return
	}

	// expectedMetrics is a map: keys are metrics name and
	// values are expected and actual count of metrics with
	// that name.
	expectedMetrics := map[string][2]int{
		"figura_compile_total": {
			2, 0,
		},
		"figura_compile_seconds": {
			1, 0,
		},
		"figura_process_start_time_seconds": {
			1, 0,
		},
	}
	for _, metric := range metrics {
		for name, count := range expectedMetrics {
			if metric.GetName() == name {
				value := len(metric.GetMetric())
				expectedMetrics[name] = [2]int{count[0], value}
			}
		}
	}
	for name, count := range expectedMetrics {
		if count[1] != count[0] {
			t.Errorf("with: %s, expected %d metrics, got %d metrics", name, count[0], count[1])
		}
	}

	for _, metric := range metrics {
		if metric.GetName() != "figura_compile_total" {
			continue
		}
		for _, m := range metric.GetMetric() {
			result := m.GetLabel()[0].GetValue()
			v := m.GetCounter().GetValue()
			if (result == ResultSuccess && v != 2) || (result == ResultFailure && v != 1) {
				t.Errorf("unexpected count of %s: %v", result, v)
			}
		}
	}
}

func TestInitTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := (&Prometheus{Registerer: registry}).Init(); err != nil {
		t.Errorf("init failed: %+v", err)
		return
	}
	if err := (&Prometheus{Registerer: registry}).Init(); err == nil {
		t.Errorf("expected a duplicate registration error")
	}
}
