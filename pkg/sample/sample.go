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

// Package sample holds the flat observation model handed to the scrape
// server, and the assembler that builds it from normalized account data.
package sample

import (
	"github.com/prometheus-community/woob_bank_exporter/pkg/normalizer"
	"github.com/prometheus-community/woob_bank_exporter/pkg/schema"
)

// Kind is the exposition-level type of a sample.
type Kind int

const (
	Gauge Kind = iota
	Counter
)

func (k Kind) String() string {
	if k == Counter {
		return "counter"
	}
	return "gauge"
}

// AccountIDLabel carries the account identifier when the exporter watches
// more than one account under one backend.
const AccountIDLabel = "id"

// Sample is one observation emitted for one scrape cycle. Samples are built
// fresh every cycle and not mutated afterwards.
type Sample struct {
	Name   string
	Help   string
	Kind   Kind
	Value  float64
	Labels map[string]string
}

// Assemble builds one sample per coerced metric value of one account. Later
// label sources win on key collision: static process labels, then the
// account id, then the account's own descriptive fields.
func Assemble(accountID string, values []normalizer.MetricValue, dynamicLabels, staticLabels map[string]string, includeAccountID bool) []Sample {
	samples := make([]Sample, 0, len(values))
	for _, v := range values {
		labels := make(map[string]string, len(staticLabels)+len(dynamicLabels)+1)
		for name, value := range staticLabels {
			labels[name] = value
		}
		if includeAccountID {
			labels[AccountIDLabel] = accountID
		}
		for name, value := range dynamicLabels {
			labels[name] = value
		}
		kind := Gauge
		if v.Definition.Kind == schema.DateAsCounter {
			kind = Counter
		}
		samples = append(samples, Sample{
			Name:   schema.NamePrefix + v.Definition.Name,
			Help:   v.Definition.Help,
			Kind:   kind,
			Value:  v.Value,
			Labels: labels,
		})
	}
	return samples
}
