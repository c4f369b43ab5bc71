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

// Package collector drives one collection cycle: list every account from the
// provider, normalize it, and assemble the flat sample set for the scrape.
package collector

import (
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/prometheus-community/woob_bank_exporter/pkg/normalizer"
	"github.com/prometheus-community/woob_bank_exporter/pkg/provider"
	"github.com/prometheus-community/woob_bank_exporter/pkg/sample"
	"github.com/prometheus-community/woob_bank_exporter/pkg/schema"
	"github.com/prometheus-community/woob_bank_exporter/pkg/telemetry"
)

// StaticLabels are attached to every sample regardless of account content.
type StaticLabels struct {
	// Job is the exporter instance name.
	Job string
	// Name is the configured backend instance name.
	Name string
	// Module is the backend module identifier.
	Module string
}

func (l StaticLabels) labelSet() map[string]string {
	return map[string]string{
		"job":    l.Job,
		"name":   l.Name,
		"module": l.Module,
	}
}

// Config carries everything a Collector needs. There is no ambient state:
// the same pipeline serves both the multi-account and the single-account
// deployment, switched by IncludeAccountID.
type Config struct {
	Provider provider.Provider
	Registry *schema.Registry
	Labels   StaticLabels
	// IncludeAccountID tags every sample with the account id label. Enable
	// it when the backend serves more than one account; a backend fixed to a
	// single account can omit the label.
	IncludeAccountID bool
	Logger           log.Logger
}

// Collector runs collection cycles. It holds no mutable state between
// cycles, so concurrent reads of its configuration are safe.
type Collector struct {
	cfg Config
}

func New(cfg Config) (*Collector, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("collector: no accounts provider configured")
	}
	if cfg.Registry == nil {
		cfg.Registry = schema.DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	return &Collector{cfg: cfg}, nil
}

// Collect runs one cycle. A provider failure aborts the cycle and is
// returned to the caller; per-field coercion failures only suppress the
// affected samples. Samples come back in account order, registry order
// within an account.
func (c *Collector) Collect() ([]sample.Sample, error) {
	start := time.Now()
	accounts, err := c.cfg.Provider.ListAccounts()
	if err != nil {
		telemetry.ProviderErrors.Inc()
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	static := c.cfg.Labels.labelSet()
	var samples []sample.Sample
	for _, acct := range accounts {
		labels, values := normalizer.Normalize(acct, c.cfg.Registry, telemetry.FieldSkips, c.cfg.Logger)
		samples = append(samples, sample.Assemble(acct.ID(), values, labels, static, c.cfg.IncludeAccountID)...)
		telemetry.AccountsScraped.Inc()
	}

	telemetry.SamplesCollected.Add(float64(len(samples)))
	telemetry.ScrapeDuration.Observe(time.Since(start).Seconds())
	level.Info(c.cfg.Logger).Log("msg", "collection cycle complete", "accounts", len(accounts), "samples", len(samples))
	for _, s := range samples {
		level.Debug(c.cfg.Logger).Log("msg", "collected sample", "metric", s.Name, "kind", s.Kind, "value", s.Value, "labels", fmt.Sprint(s.Labels))
	}
	return samples, nil
}
