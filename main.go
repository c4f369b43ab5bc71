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

package main

import (
	"net/http"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/promlog"
	promlogflag "github.com/prometheus/common/promlog/flag"
	"github.com/prometheus/common/version"
	"github.com/prometheus/exporter-toolkit/web"
	webflag "github.com/prometheus/exporter-toolkit/web/kingpinflag"

	"github.com/prometheus-community/woob_bank_exporter/pkg/bridge"
	"github.com/prometheus-community/woob_bank_exporter/pkg/collector"
	"github.com/prometheus-community/woob_bank_exporter/pkg/config"
	"github.com/prometheus-community/woob_bank_exporter/pkg/provider"
	fileprovider "github.com/prometheus-community/woob_bank_exporter/pkg/provider/file"
	"github.com/prometheus-community/woob_bank_exporter/pkg/provider/woob"
	"github.com/prometheus-community/woob_bank_exporter/pkg/schema"
	"github.com/prometheus-community/woob_bank_exporter/pkg/telemetry"
)

func newProvider(cfg *config.Config, logger log.Logger) (provider.Provider, error) {
	if cfg.AccountsFile != "" {
		return fileprovider.NewProvider(cfg.AccountsFile, log.With(logger, "component", "file_provider"))
	}
	return woob.NewClient(cfg.BridgeURL, cfg.Login, cfg.Password, cfg.ScrapeTimeout, log.With(logger, "component", "woob_bridge"))
}

func main() {
	var (
		toolkitFlags = webflag.AddFlags(kingpin.CommandLine, ":8123")
		metricsPath  = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics.").Default("/metrics").String()

		exporterName     = kingpin.Flag("woob.exporter-name", "Value of the job label attached to every sample.").Envar("WOOB_BANK_EXPORTER_NAME").Default("woob-bank-exporter").String()
		backendModule    = kingpin.Flag("woob.module", "Woob backend module identifier.").Envar("WOOB_BANK_MODULE").String()
		backendName      = kingpin.Flag("woob.name", "Configured backend instance name.").Envar("WOOB_BANK_NAME").String()
		login            = kingpin.Flag("woob.login", "Login for the woob bridge.").Envar("WOOB_BANK_LOGIN").String()
		password         = kingpin.Flag("woob.password", "Password for the woob bridge.").Envar("WOOB_BANK_PASSWORD").String()
		bridgeURL        = kingpin.Flag("woob.bridge-url", "Base URL of the woob HTTP bridge serving the account list.").Envar("WOOB_BANK_BRIDGE_URL").String()
		accountsFile     = kingpin.Flag("woob.accounts-file", "YAML file with a fixed account set, used instead of a bridge.").Envar("WOOB_BANK_ACCOUNTS_FILE").String()
		includeAccountID = kingpin.Flag("woob.account-id-label", "Tag every sample with the account id label. Disable for a backend fixed to a single account.").Envar("WOOB_BANK_ACCOUNT_ID_LABEL").Default("true").Bool()
		scrapeTimeout    = kingpin.Flag("woob.scrape-timeout", "Timeout for one account listing call against the bridge.").Envar("WOOB_BANK_SCRAPE_TIMEOUT").Default("30s").Duration()
	)

	promlogConfig := &promlog.Config{}
	promlogflag.AddFlags(kingpin.CommandLine, promlogConfig)
	kingpin.Version(version.Print("woob_bank_exporter"))
	kingpin.CommandLine.UsageWriter(os.Stdout)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()
	logger := promlog.New(promlogConfig)

	cfg := &config.Config{
		ExporterName:     *exporterName,
		BackendName:      *backendName,
		BackendModule:    *backendModule,
		Login:            *login,
		Password:         *password,
		BridgeURL:        *bridgeURL,
		AccountsFile:     *accountsFile,
		IncludeAccountID: *includeAccountID,
		ScrapeTimeout:    *scrapeTimeout,
	}
	if err := cfg.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}

	prov, err := newProvider(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to set up accounts provider", "err", err)
		os.Exit(1)
	}
	ok, err := prov.CheckCredentials()
	if err != nil {
		level.Error(logger).Log("msg", "credential check failed", "err", err)
		os.Exit(1)
	}
	if !ok {
		level.Error(logger).Log("msg", "invalid credentials", "module", cfg.BackendModule, "name", cfg.BackendName)
		os.Exit(1)
	}

	coll, err := collector.New(collector.Config{
		Provider: prov,
		Registry: schema.DefaultRegistry(),
		Labels: collector.StaticLabels{
			Job:    cfg.ExporterName,
			Name:   cfg.BackendName,
			Module: cfg.BackendModule,
		},
		IncludeAccountID: cfg.IncludeAccountID,
		Logger:           logger,
	})
	if err != nil {
		level.Error(logger).Log("msg", "failed to set up collector", "err", err)
		os.Exit(1)
	}

	// A fresh registry: no process or Go runtime collectors, only bank
	// samples, exporter telemetry, and build info.
	reg := prometheus.NewRegistry()
	reg.MustRegister(version.NewCollector("woob_bank_exporter"))
	telemetry.Register(reg)
	reg.MustRegister(bridge.New(coll, logger))

	http.Handle(*metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if *metricsPath != "/" {
		http.Handle("/", http.RedirectHandler(*metricsPath, http.StatusMovedPermanently))
	}

	level.Info(logger).Log("msg", "starting woob_bank_exporter", "version", version.Info())
	level.Info(logger).Log("msg", "build context", "context", version.BuildContext())

	srv := &http.Server{}
	if err := web.ListenAndServe(srv, toolkitFlags, logger); err != nil {
		level.Error(logger).Log("msg", "HTTP server failed", "err", err)
		os.Exit(1)
	}
}
