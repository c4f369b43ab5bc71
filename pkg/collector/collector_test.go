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

package collector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus-community/woob_bank_exporter/pkg/account"
	"github.com/prometheus-community/woob_bank_exporter/pkg/sample"
)

type fakeProvider struct {
	accounts []account.Account
	err      error
}

func (p *fakeProvider) ListAccounts() ([]account.Account, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.accounts, nil
}

func (p *fakeProvider) CheckCredentials() (bool, error) { return true, nil }

var testLabels = StaticLabels{Job: "x", Name: "acc", Module: "mod"}

func TestCollect(t *testing.T) {
	prov := &fakeProvider{accounts: []account.Account{
		account.NewRecord("A1", map[string]interface{}{
			"balance":      "1234.56",
			"opening_date": "2020-01-15",
			"currency":     "EUR",
		}),
	}}
	c, err := New(Config{Provider: prov, Labels: testLabels, IncludeAccountID: true})
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}

	wantLabels := map[string]string{
		"job":      "x",
		"name":     "acc",
		"module":   "mod",
		"id":       "A1",
		"currency": "EUR",
	}
	want := []sample.Sample{
		{Name: "woob_bank_balance", Help: "Balance on this bank account", Kind: sample.Gauge, Value: 1234.56, Labels: wantLabels},
		{Name: "woob_bank_opening_date", Help: "Date when the account contract was created on the bank", Kind: sample.Counter, Value: 1579046400, Labels: wantLabels},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got samples %v, want %v", got, want)
	}
}

func TestCollectOrdering(t *testing.T) {
	prov := &fakeProvider{accounts: []account.Account{
		account.NewRecord("A1", map[string]interface{}{"opening_date": "2020-01-15", "balance": "1"}),
		account.NewRecord("A2", map[string]interface{}{"balance": "2"}),
	}}
	c, err := New(Config{Provider: prov, Labels: testLabels, IncludeAccountID: true})
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}

	// Account order first, catalog order within one account: A1's balance
	// precedes A1's opening_date even though the record stores them the
	// other way around.
	wantNames := []string{"woob_bank_balance", "woob_bank_opening_date", "woob_bank_balance"}
	var gotNames []string
	for _, s := range got {
		gotNames = append(gotNames, s.Name)
	}
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Fatalf("got sample order %v, want %v", gotNames, wantNames)
	}
	if got[2].Labels["id"] != "A2" {
		t.Errorf("third sample should belong to A2, got labels %v", got[2].Labels)
	}
}

func TestCollectProviderFailurePropagates(t *testing.T) {
	providerErr := errors.New("connection refused")
	c, err := New(Config{Provider: &fakeProvider{err: providerErr}, Labels: testLabels})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Collect(); !errors.Is(err, providerErr) {
		t.Fatalf("provider failure must propagate, got %v", err)
	}
}

func TestCollectPartialFailuresDoNotAbort(t *testing.T) {
	prov := &fakeProvider{accounts: []account.Account{
		account.NewRecord("A1", map[string]interface{}{"balance": account.NotLoaded, "coming": "abc"}),
		account.NewRecord("A2", map[string]interface{}{"balance": "7"}),
	}}
	c, err := New(Config{Provider: prov, Labels: testLabels, IncludeAccountID: true})
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Value != 7 || got[0].Labels["id"] != "A2" {
		t.Fatalf("A1's broken fields must not suppress A2's samples, got %v", got)
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	prov := &fakeProvider{accounts: []account.Account{
		account.NewRecord("A1", map[string]interface{}{"balance": "1234.56", "currency": "EUR"}),
	}}
	c, err := New(Config{Provider: prov, Labels: testLabels, IncludeAccountID: true})
	if err != nil {
		t.Fatal(err)
	}

	first, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two cycles over an unchanged source must agree: %v vs %v", first, second)
	}
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected an error for a missing provider")
	}
}
