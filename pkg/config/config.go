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

// Package config holds the exporter's process configuration. It is resolved
// once at startup and passed down explicitly; nothing reads the environment
// after that.
package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	// ExporterName becomes the job label on every sample.
	ExporterName string
	// BackendName identifies the configured backend instance and becomes
	// the name label.
	BackendName string
	// BackendModule is the woob backend module identifier and becomes the
	// module label.
	BackendModule string

	// Login and Password authenticate against the woob bridge.
	Login    string
	Password string

	// BridgeURL points at the woob HTTP bridge. Mutually exclusive with
	// AccountsFile.
	BridgeURL string
	// AccountsFile serves a fixed account set from disk instead of a bridge.
	AccountsFile string

	// IncludeAccountID tags every sample with the account id label.
	IncludeAccountID bool

	// ScrapeTimeout bounds one bridge listing request.
	ScrapeTimeout time.Duration
}

// Validate enforces the settings the exporter cannot run without.
func (c *Config) Validate() error {
	if c.BackendModule == "" {
		return errors.New("backend module must be set")
	}
	if c.BackendName == "" {
		return errors.New("backend name must be set")
	}
	switch {
	case c.BridgeURL == "" && c.AccountsFile == "":
		return errors.New("one of bridge URL or accounts file must be set")
	case c.BridgeURL != "" && c.AccountsFile != "":
		return errors.New("bridge URL and accounts file are mutually exclusive")
	}
	if c.BridgeURL != "" {
		if c.Login == "" {
			return fmt.Errorf("login must be set for bridge %s", c.BridgeURL)
		}
		if c.Password == "" {
			return fmt.Errorf("password must be set for bridge %s", c.BridgeURL)
		}
	}
	return nil
}
