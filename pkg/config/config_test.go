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

package config

import "testing"

func validBridgeConfig() Config {
	return Config{
		ExporterName:  "woob-bank-exporter",
		BackendName:   "acc",
		BackendModule: "mod",
		Login:         "user",
		Password:      "secret",
		BridgeURL:     "http://localhost:6700",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid bridge config", func(c *Config) {}, false},
		{"valid file config", func(c *Config) {
			c.BridgeURL, c.Login, c.Password = "", "", ""
			c.AccountsFile = "accounts.yml"
		}, false},
		{"missing module", func(c *Config) { c.BackendModule = "" }, true},
		{"missing name", func(c *Config) { c.BackendName = "" }, true},
		{"no account source", func(c *Config) { c.BridgeURL = "" }, true},
		{"both account sources", func(c *Config) { c.AccountsFile = "accounts.yml" }, true},
		{"bridge without login", func(c *Config) { c.Login = "" }, true},
		{"bridge without password", func(c *Config) { c.Password = "" }, true},
		{"file without credentials", func(c *Config) {
			c.BridgeURL = ""
			c.AccountsFile = "accounts.yml"
			c.Login, c.Password = "", ""
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBridgeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
