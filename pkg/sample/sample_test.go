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

package sample

import (
	"reflect"
	"testing"

	"github.com/prometheus-community/woob_bank_exporter/pkg/normalizer"
	"github.com/prometheus-community/woob_bank_exporter/pkg/schema"
)

var (
	balanceDef = schema.Definition{Name: "balance", Help: "Balance on this bank account", Kind: schema.Gauge}
	openingDef = schema.Definition{Name: "opening_date", Help: "Date when the account contract was created on the bank", Kind: schema.DateAsCounter}
)

func TestAssemble(t *testing.T) {
	values := []normalizer.MetricValue{
		{Definition: balanceDef, Value: 1234.56},
		{Definition: openingDef, Value: 1579046400},
	}
	static := map[string]string{"job": "x", "name": "acc", "module": "mod"}
	dynamic := map[string]string{"currency": "EUR"}

	got := Assemble("A1", values, dynamic, static, true)

	wantLabels := map[string]string{
		"job":      "x",
		"name":     "acc",
		"module":   "mod",
		"id":       "A1",
		"currency": "EUR",
	}
	want := []Sample{
		{Name: "woob_bank_balance", Help: balanceDef.Help, Kind: Gauge, Value: 1234.56, Labels: wantLabels},
		{Name: "woob_bank_opening_date", Help: openingDef.Help, Kind: Counter, Value: 1579046400, Labels: wantLabels},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got samples %v, want %v", got, want)
	}
}

func TestAssembleWithoutAccountIDLabel(t *testing.T) {
	got := Assemble("A1", []normalizer.MetricValue{{Definition: balanceDef, Value: 1}}, nil, map[string]string{"job": "x"}, false)
	if _, ok := got[0].Labels["id"]; ok {
		t.Fatal("id label must be absent for single-account backends")
	}
}

func TestAssembleLabelPrecedence(t *testing.T) {
	static := map[string]string{"job": "x", "module": "mod"}
	dynamic := map[string]string{"module": "from_account", "id": "from_account"}

	got := Assemble("A1", []normalizer.MetricValue{{Definition: balanceDef, Value: 1}}, dynamic, static, true)

	labels := got[0].Labels
	if labels["module"] != "from_account" {
		t.Errorf("dynamic labels must win over static ones, got module=%q", labels["module"])
	}
	if labels["id"] != "from_account" {
		t.Errorf("dynamic labels must win over the id label, got id=%q", labels["id"])
	}
	if labels["job"] != "x" {
		t.Errorf("unrelated static labels must survive, got job=%q", labels["job"])
	}
}

func TestAssembleNoValuesNoSamples(t *testing.T) {
	if got := Assemble("A1", nil, map[string]string{"currency": "EUR"}, map[string]string{"job": "x"}, true); len(got) != 0 {
		t.Fatalf("an account with no coerced values yields no samples, got %v", got)
	}
}

func TestKindString(t *testing.T) {
	if Gauge.String() != "gauge" || Counter.String() != "counter" {
		t.Fatalf("unexpected kind names: %v, %v", Gauge, Counter)
	}
}
