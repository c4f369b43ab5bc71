// Copyright The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bridge adapts the collection driver to the prometheus.Collector
// contract, so a plain promhttp handler can serve the sample set.
package bridge

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prometheus-community/woob_bank_exporter/pkg/collector"
	"github.com/prometheus-community/woob_bank_exporter/pkg/sample"
)

// Bridge is an unchecked prometheus.Collector: the label set of every metric
// depends on which descriptive fields each account happens to carry, so no
// descriptors can be pre-announced.
type Bridge struct {
	collector *collector.Collector
	logger    log.Logger
}

func New(c *collector.Collector, logger log.Logger) *Bridge {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bridge{collector: c, logger: logger}
}

// Describe implements prometheus.Collector. Sending no descriptors marks
// the bridge as unchecked.
func (b *Bridge) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector. A provider failure is surfaced
// as an invalid metric, which fails the whole scrape; partial per-field
// failures have already been absorbed by the pipeline.
func (b *Bridge) Collect(ch chan<- prometheus.Metric) {
	samples, err := b.collector.Collect()
	if err != nil {
		level.Error(b.logger).Log("msg", "collection cycle failed", "err", err)
		ch <- prometheus.NewInvalidMetric(
			prometheus.NewDesc("woob_bank_error", "Error listing bank accounts.", nil, nil),
			err,
		)
		return
	}
	for _, s := range samples {
		m, err := prometheus.NewConstMetric(
			prometheus.NewDesc(s.Name, s.Help, nil, s.Labels),
			valueType(s.Kind),
			s.Value,
		)
		if err != nil {
			level.Warn(b.logger).Log("msg", "dropping sample", "metric", s.Name, "err", err)
			continue
		}
		ch <- m
	}
}

func valueType(k sample.Kind) prometheus.ValueType {
	if k == sample.Counter {
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}
