package consul

import (
	"github.com/hashicorp/consul/api"
)

// ClientConfig overrides the agent defaults, which api.DefaultConfig reads
// from CONSUL_HTTP_ADDR and friends. Empty fields keep those defaults.
type ClientConfig struct {
	Address    string
	Token      string
	Datacenter string
}

// NewClient accepts host:port as well as http:// and https:// addresses.
func NewClient(cfg ClientConfig) (*api.Client, error) {
	config := api.DefaultConfig()
	if cfg.Address != "" {
		config.Address = cfg.Address
	}
	if cfg.Token != "" {
		config.Token = cfg.Token
	}
	if cfg.Datacenter != "" {
		config.Datacenter = cfg.Datacenter
	}
	return api.NewClient(config)
}
