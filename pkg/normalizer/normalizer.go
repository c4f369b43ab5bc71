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

// Package normalizer turns one raw account record into a dynamic label set
// and a list of coerced metric values.
package normalizer

import (
	"math"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prometheus-community/woob_bank_exporter/pkg/account"
	"github.com/prometheus-community/woob_bank_exporter/pkg/schema"
)

// Skip reasons reported in the field skip counter.
const (
	SkipAbsent    = "absent"
	SkipNotLoaded = "not_loaded"
	SkipInvalid   = "invalid"
)

// ignoredLabelFields carry no diagnostic value or would leak backend routing
// internals into label values.
var ignoredLabelFields = map[string]struct{}{
	"url": {},
}

// MetricValue is one successfully coerced metric field of an account.
type MetricValue struct {
	Definition schema.Definition
	Value      float64
}

// Normalize splits one account into its dynamic label set and its coerced
// metric values, in registry order. Per-field failures are skips, never
// errors: backends populate optional fields far too unevenly for anything
// stricter. Skips are counted in fieldSkips by reason.
func Normalize(acct account.Account, registry *schema.Registry, fieldSkips *prometheus.CounterVec, logger log.Logger) (map[string]string, []MetricValue) {
	fields := make(map[string]interface{})
	labels := make(map[string]string)
	for _, f := range acct.Fields() {
		fields[f.Name] = f.Value
		if registry.IsMetric(f.Name) {
			continue
		}
		if _, ok := ignoredLabelFields[f.Name]; ok {
			continue
		}
		if f.Value == nil || account.IsNotLoaded(f.Value) {
			continue
		}
		if s := account.FormatValue(f.Value); s != "" {
			labels[f.Name] = s
		}
	}

	values := make([]MetricValue, 0, registry.Len())
	for _, def := range registry.Definitions() {
		raw, ok := fields[def.Name]
		if !ok {
			fieldSkips.WithLabelValues(SkipAbsent).Inc()
			continue
		}
		v, ok := TryCoerce(raw, def.Kind)
		if !ok {
			reason := skipReason(raw)
			fieldSkips.WithLabelValues(reason).Inc()
			level.Debug(logger).Log("msg", "skipping metric field", "account", acct.ID(), "field", def.Name, "reason", reason)
			continue
		}
		values = append(values, MetricValue{Definition: def, Value: v})
	}
	return labels, values
}

// TryCoerce converts a raw field value into a sample value for the given
// metric kind. The boolean result is the only failure signal: absent,
// sentinel, empty, and unparseable values yield no sample rather than an
// error. The returned value is always finite.
func TryCoerce(v interface{}, kind schema.Kind) (float64, bool) {
	if v == nil || account.IsNotLoaded(v) {
		return 0, false
	}
	if kind == schema.DateAsCounter {
		return coerceDate(v)
	}
	return coerceNumber(v)
}

func coerceNumber(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		s := account.FormatValue(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceDate maps a calendar date to epoch seconds at UTC midnight.
func coerceDate(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case time.Time:
		u := t.UTC()
		return float64(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Unix()), true
	case string:
		if t == "" {
			return 0, false
		}
		parsed, err := time.Parse(account.DateLayout, t)
		if err != nil {
			return 0, false
		}
		return float64(parsed.Unix()), true
	default:
		return 0, false
	}
}

func skipReason(raw interface{}) string {
	switch {
	case raw == nil:
		return SkipAbsent
	case account.IsNotLoaded(raw):
		return SkipNotLoaded
	default:
		return SkipInvalid
	}
}
