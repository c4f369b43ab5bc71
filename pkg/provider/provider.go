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

// Package provider defines the boundary to whatever hands the exporter its
// account list.
package provider

import (
	"github.com/prometheus-community/woob_bank_exporter/pkg/account"
)

// Provider serves the account list of one configured backend. A provider may
// hold an authenticated session internally; the exporter only reads from it
// and never re-authenticates.
type Provider interface {
	// ListAccounts fetches the full account list for one collection cycle.
	ListAccounts() ([]account.Account, error)

	// CheckCredentials reports whether the backend accepts the configured
	// credentials. Called once at startup.
	CheckCredentials() (bool, error)
}
