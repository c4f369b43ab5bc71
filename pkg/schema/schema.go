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

// Package schema holds the fixed catalog of bank account fields that are
// exported as metrics.
package schema

import "fmt"

// NamePrefix is prepended to every exported metric name.
const NamePrefix = "woob_bank_"

// Kind is the numeric interpretation of a metric field.
type Kind int

const (
	// Gauge is an instantaneous value that can rise or fall.
	Gauge Kind = iota
	// DateAsCounter is a calendar date exported as Unix epoch seconds with
	// the counter exposition type. The underlying value is a fixed date,
	// not a running count; the convention is inherited from the schema and
	// kept as-is.
	DateAsCounter
)

// Definition describes one exported metric field.
type Definition struct {
	Name string
	Help string
	Kind Kind
}

// Registry is an ordered, read-only catalog of metric definitions. It is safe
// for concurrent use once constructed.
type Registry struct {
	defs  []Definition
	names map[string]struct{}
}

// NewRegistry builds a registry from defs, preserving their order. Duplicate
// metric names are a configuration error.
func NewRegistry(defs ...Definition) (*Registry, error) {
	names := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("metric definition with empty name")
		}
		if _, ok := names[d.Name]; ok {
			return nil, fmt.Errorf("duplicate metric definition %q", d.Name)
		}
		names[d.Name] = struct{}{}
	}
	return &Registry{defs: append([]Definition(nil), defs...), names: names}, nil
}

// Definitions returns the catalog in registration order. The caller gets a
// copy and may not grow the registry through it.
func (r *Registry) Definitions() []Definition {
	return append([]Definition(nil), r.defs...)
}

// IsMetric reports whether name is a metric field rather than a label field.
func (r *Registry) IsMetric(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of definitions in the catalog.
func (r *Registry) Len() int { return len(r.defs) }

// DefaultRegistry returns the woob bank account catalog: the currency amounts
// and contract dates a backend may populate on an account.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Definition{Name: "balance", Help: "Balance on this bank account", Kind: Gauge},
		Definition{Name: "coming", Help: "Sum of coming movements", Kind: Gauge},
		Definition{Name: "valuation_diff_ratio", Help: "+/- values ratio", Kind: Gauge},
		Definition{Name: "total_amount", Help: "Total amount loaned", Kind: Gauge},
		Definition{Name: "next_payment_amount", Help: "Amount of next payment", Kind: Gauge},
		Definition{Name: "opening_date", Help: "Date when the account contract was created on the bank", Kind: DateAsCounter},
		Definition{Name: "subscription_date", Help: "Date of subscription of the loan", Kind: DateAsCounter},
		Definition{Name: "maturity_date", Help: "Estimated end date of the loan", Kind: DateAsCounter},
		Definition{Name: "next_payment_date", Help: "Date of the next payment", Kind: DateAsCounter},
	)
	if err != nil {
		// The default catalog is a literal; a duplicate here is a bug.
		panic(err)
	}
	return r
}
