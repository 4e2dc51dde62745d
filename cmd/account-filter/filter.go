package main

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anchorfree/account-filter/pkg/account_reader"
	"github.com/anchorfree/account-filter/pkg/accounts_selector"
	"github.com/anchorfree/account-filter/pkg/consul"
	"github.com/anchorfree/account-filter/pkg/logger"
	"github.com/anchorfree/account-filter/pkg/types"
)

type FilterCmd struct {
	Config           string `help:"Plugin config file with an accounts_selector section (JSON or YAML)" required:"" type:"existingfile" env:"ACCOUNT_FILTER_CONFIG"`
	Watch            bool   `help:"Reload the config file when it changes"`
	ConsulAddress    string `help:"Consul address to reload the config from" env:"CONSUL_HTTP_ADDR"`
	ConsulKey        string `help:"Consul KV key holding the config document"`
	ConsulToken      string `help:"Consul ACL token" env:"CONSUL_HTTP_TOKEN"`
	ConsulDatacenter string `help:"Consul datacenter to read the key from"`
	MetricsListen    string `help:"Address to serve Prometheus metrics on, disabled when empty"`
	LogLevel         string `help:"Log level" default:"info" enum:"debug,info,warn,error"`
	LogFormat        string `help:"Log format" default:"json" enum:"json,console"`
}

func (c *FilterCmd) Run(ctx context.Context) error {
	if err := logger.Init(logger.Props{LogLevel: c.LogLevel, LogFormat: c.LogFormat}); err != nil {
		return err
	}
	return c.run(ctx, os.Stdin, os.Stdout)
}

func (c *FilterCmd) run(ctx context.Context, in io.Reader, out io.Writer) error {
	selector, err := accounts_selector.FromFile(c.Config)
	if err != nil {
		return err
	}

	metrics := accounts_selector.NewMetrics()
	manager := accounts_selector.NewManager(selector, metrics)

	if c.Watch {
		if err := manager.RunFileWatcher(ctx, c.Config); err != nil {
			return err
		}
	}
	if c.ConsulAddress != "" && c.ConsulKey != "" {
		if err := manager.RunConsulWatcher(ctx, consul.ClientConfig{
			Address:    c.ConsulAddress,
			Token:      c.ConsulToken,
			Datacenter: c.ConsulDatacenter,
		}, c.ConsulKey); err != nil {
			return err
		}
	}
	if c.MetricsListen != "" {
		reg := prom.NewRegistry()
		metrics.MustRegister(reg)
		go serveMetrics(c.MetricsListen, reg)
	}

	if !manager.IsEnabled() && !c.Watch && c.ConsulKey == "" {
		logger.Get().Warn("Accounts selector selects nothing, all account updates will be dropped")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := account_reader.NewIterator(in)
	it := accounts_selector.NewIterator(reader, manager, metrics)
	// reads block on idle input, so they run apart from the ctx check
	events := make(chan *types.AccountEvent)
	go func() {
		defer close(events)
		for it.Next() {
			select {
			case events <- it.At():
			case <-ctx.Done():
				return
			}
		}
	}()

	w := bufio.NewWriter(out)
	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("Interrupted, stop filtering account updates")
			return w.Flush()
		case event, ok := <-events:
			if !ok {
				if err := w.Flush(); err != nil {
					return err
				}
				if reader.Skipped() > 0 {
					logger.Get().Warnf("Skipped %d malformed account updates", reader.Skipped())
				}
				return it.Err()
			}
			if _, err := w.Write(event.Message); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
}

func serveMetrics(addr string, g prom.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	logger.Get().Infof("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Get().Errorf("Metrics server failed: %v", err)
	}
}
