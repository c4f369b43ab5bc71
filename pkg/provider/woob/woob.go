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

// Package woob reads accounts from a woob HTTP bridge, the sidecar that
// exposes a Python woob backend as JSON.
package woob

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/prometheus-community/woob_bank_exporter/pkg/account"
)

// Client is an accounts provider backed by a woob bridge. The bridge serves
// the account list under GET <base>/accounts, behind basic auth.
type Client struct {
	baseURL  *url.URL
	login    string
	password string
	client   *http.Client
	logger   log.Logger
}

// NewClient builds a bridge client. timeout bounds one listing request; a
// hung bridge otherwise hangs the whole scrape cycle.
func NewClient(rawURL, login, password string, timeout time.Duration, logger log.Logger) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bridge URL %q: %w", rawURL, err)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Client{
		baseURL:  u,
		login:    login,
		password: password,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}, nil
}

func (c *Client) accountsRequest() (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL.JoinPath("accounts").String(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.login, c.password)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ListAccounts implements provider.Provider. Each element of the bridge's
// JSON response is one account object; the id member identifies the account
// and every other member is a raw field.
func (c *Client) ListAccounts() ([]account.Account, error) {
	req, err := c.accountsRequest()
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing accounts: unexpected status %s", resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var raw []map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding account list: %w", err)
	}

	accounts := make([]account.Account, 0, len(raw))
	for _, fields := range raw {
		id := account.FormatValue(fields["id"])
		if id == "" {
			level.Warn(c.logger).Log("msg", "dropping account without id")
			continue
		}
		delete(fields, "id")
		accounts = append(accounts, account.NewRecord(id, fields))
	}
	return accounts, nil
}

// CheckCredentials implements provider.Provider. The bridge answers the
// accounts listing with 401 or 403 when the backend rejects the credentials.
func (c *Client) CheckCredentials() (bool, error) {
	req, err := c.accountsRequest()
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("checking credentials: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("checking credentials: unexpected status %s", resp.Status)
	}
}
