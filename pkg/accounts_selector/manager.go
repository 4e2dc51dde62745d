package accounts_selector

import (
	"context"
	"sync"

	"github.com/anchorfree/account-filter/pkg/consul"
	"github.com/anchorfree/account-filter/pkg/file_watcher"
	"github.com/anchorfree/account-filter/pkg/logger"
)

const (
	reloadSourceConsul = "consul"
	reloadSourceFile   = "file"
)

// Manager holds the active selector and replaces it wholesale on reload.
// A reload that fails validation keeps the previous selector.
type Manager struct {
	mx       sync.RWMutex
	selector *AccountsSelector
	metrics  *Metrics
}

var _ Selector = (*Manager)(nil)

func NewManager(selector *AccountsSelector, metrics *Metrics) *Manager {
	if selector == nil {
		selector = Default()
	}
	return &Manager{
		selector: selector,
		metrics:  metrics,
	}
}

// Apply makes selector active. nil means Default.
func (m *Manager) Apply(selector *AccountsSelector) {
	if selector == nil {
		selector = Default()
	}
	m.mx.Lock()
	defer m.mx.Unlock()
	m.selector = selector
}

func (m *Manager) Current() *AccountsSelector {
	m.mx.RLock()
	defer m.mx.RUnlock()
	return m.selector
}

func (m *Manager) IsEnabled() bool {
	return m.Current().IsEnabled()
}

func (m *Manager) IsAccountSelected(account, owner []byte) bool {
	return m.Current().IsAccountSelected(account, owner)
}

func (m *Manager) RunConsulWatcher(ctx context.Context, cfg consul.ClientConfig, key string) error {
	client, err := consul.NewClient(cfg)
	if err != nil {
		return err
	}
	watcher := consul.NewWatcher(client, nil)
	watcher.Watch(ctx, key, func(raw []byte) error {
		return m.updateConfig(reloadSourceConsul, raw)
	})
	return nil
}

// RunFileWatcher reloads path on change until ctx is done.
func (m *Manager) RunFileWatcher(ctx context.Context, path string) error {
	w, err := file_watcher.New(path, func(file string) {
		if err := m.reloadFile(file); err != nil {
			logger.Get().Errorf("Accounts selector reload from %s failed: %v", file, err)
		}
	})
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		w.Close()
	}()
	return nil
}

func (m *Manager) reloadFile(path string) error {
	cfg, err := LoadFile(path)
	if err != nil {
		m.metrics.incReload(reloadSourceFile, err)
		return err
	}
	return m.applyConfig(reloadSourceFile, cfg)
}

func (m *Manager) updateConfig(source string, raw []byte) error {
	cfg, err := ParseConfig(raw)
	if err != nil {
		m.metrics.incReload(source, err)
		return err
	}
	return m.applyConfig(source, cfg)
}

func (m *Manager) applyConfig(source string, cfg *FileConfig) error {
	selector, err := NewFromConfig(cfg.AccountsSelector)
	m.metrics.incReload(source, err)
	if err != nil {
		return err
	}
	m.Apply(selector)
	logger.Get().Infof("Accounts selector has been successfully updated from %s", source)
	return nil
}
