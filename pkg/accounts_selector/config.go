package accounts_selector

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Accounts  []string `yaml:"accounts" json:"accounts"`
	Owners    []string `yaml:"owners" json:"owners"`
	HashSlots []int64  `yaml:"hash_slots" json:"hash_slots"`
}

// FileConfig is the plugin config document. JSON documents parse as well.
type FileConfig struct {
	AccountsSelector *Config `yaml:"accounts_selector" json:"accounts_selector"`
}

func ParseConfig(raw []byte) (*FileConfig, error) {
	cfg := &FileConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse accounts selector config")
	}
	return cfg, nil
}

func LoadFile(path string) (*FileConfig, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %s", path)
	}
	return ParseConfig(raw)
}

// FromBytes parses a config document and builds the selector it describes.
func FromBytes(raw []byte) (*AccountsSelector, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg.AccountsSelector)
}

func FromFile(path string) (*AccountsSelector, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg.AccountsSelector)
}
