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

// Package telemetry holds the exporter's own metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AccountsScraped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "woob_bank_exporter_accounts_scraped_total",
			Help: "The total number of accounts processed across all collection cycles.",
		},
	)
	SamplesCollected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "woob_bank_exporter_samples_total",
			Help: "The total number of samples emitted across all collection cycles.",
		},
	)
	FieldSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "woob_bank_exporter_field_skips_total",
			Help: "The total number of account metric fields that produced no sample.",
		},
		[]string{"reason"},
	)
	ProviderErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "woob_bank_exporter_provider_errors_total",
			Help: "The total number of failed account listing calls.",
		},
	)
	ScrapeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "woob_bank_exporter_scrape_duration_seconds",
			Help:    "Time taken to list and transform all accounts for one scrape.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
)

// Register registers the exporter's own metrics with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		AccountsScraped,
		SamplesCollected,
		FieldSkips,
		ProviderErrors,
		ScrapeDuration,
	)
}
