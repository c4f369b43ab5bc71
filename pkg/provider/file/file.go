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

// Package file serves a fixed account set from a YAML file, reloading it
// when the file changes. It backs single-account setups and local
// development, where running a full woob bridge is overkill.
package file

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	yaml "gopkg.in/yaml.v2"

	"github.com/prometheus-community/woob_bank_exporter/pkg/account"
)

type accountsFile struct {
	Accounts []accountEntry `yaml:"accounts"`
}

type accountEntry struct {
	ID     string                 `yaml:"id"`
	Fields map[string]interface{} `yaml:"fields"`
}

// Provider is a file-backed accounts provider.
type Provider struct {
	path    string
	logger  log.Logger
	watcher *fsnotify.Watcher

	mtx      sync.RWMutex
	accounts []account.Account
}

// NewProvider loads path and starts watching it for changes. A file that
// fails to parse at startup is fatal; a broken rewrite later keeps the last
// good account set.
func NewProvider(path string, logger log.Logger) (*Provider, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	p := &Provider{path: path, logger: logger}
	if err := p.load(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching accounts file: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching accounts file: %w", err)
	}
	p.watcher = watcher
	go p.watch()
	return p, nil
}

func (p *Provider) load() error {
	buf, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading accounts file: %w", err)
	}
	var f accountsFile
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return fmt.Errorf("parsing accounts file %s: %w", p.path, err)
	}
	accounts := make([]account.Account, 0, len(f.Accounts))
	for _, e := range f.Accounts {
		if e.ID == "" {
			return fmt.Errorf("account without id in %s", p.path)
		}
		accounts = append(accounts, account.NewRecord(e.ID, e.Fields))
	}
	p.mtx.Lock()
	p.accounts = accounts
	p.mtx.Unlock()
	return nil
}

func (p *Provider) watch() {
	for {
		select {
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.load(); err != nil {
				level.Error(p.logger).Log("msg", "failed to reload accounts file", "err", err)
				continue
			}
			level.Info(p.logger).Log("msg", "reloaded accounts file", "file", p.path)
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			level.Error(p.logger).Log("msg", "accounts file watcher error", "err", err)
		}
	}
}

// ListAccounts implements provider.Provider.
func (p *Provider) ListAccounts() ([]account.Account, error) {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	return append([]account.Account(nil), p.accounts...), nil
}

// CheckCredentials implements provider.Provider. A file needs none.
func (p *Provider) CheckCredentials() (bool, error) {
	return true, nil
}

// Close stops watching the accounts file.
func (p *Provider) Close() error {
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}
