package consul

import (
	"context"
	"time"

	"github.com/cenk/backoff"
	"github.com/hashicorp/consul/api"

	"github.com/anchorfree/account-filter/pkg/logger"
)

const (
	DefaultRetryInterval  = 5 * time.Second
	DefaultMaxBackoffTime = 100 * time.Second
)

type Watcher struct {
	client *api.Client
	config *WatcherConfig
}

type WatcherConfig struct {
	RetryInterval  time.Duration
	MaxBackoffTime time.Duration
}

type Callback func([]byte) error

func NewWatcher(client *api.Client, config *WatcherConfig) *Watcher {
	if config == nil {
		config = &WatcherConfig{
			RetryInterval:  DefaultRetryInterval,
			MaxBackoffTime: DefaultMaxBackoffTime,
		}
	}
	return &Watcher{client: client, config: config}
}

func (w *Watcher) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.config.RetryInterval
	b.MaxInterval = w.config.MaxBackoffTime
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Watch runs callback with the value of key every time its modify index
// changes, until ctx is done. Callback errors are logged, the watch goes on.
func (w *Watcher) Watch(ctx context.Context, key string, callback Callback) {
	kv := w.client.KV()

	go func() {
		curIndex := uint64(0)
		b := w.newBackOff()
		for {
			pair, meta, err := kv.Get(key, (&api.QueryOptions{
				WaitIndex: curIndex,
			}).WithContext(ctx))
			if ctx.Err() != nil {
				logger.Get().Debugf("Consul watcher for %s stopped", key)
				return
			}
			if err != nil {
				retry := b.NextBackOff()
				logger.Get().Errorf("Can't get data from consul: %v, new retry timeout: %s", err, retry)
				if !sleep(ctx, retry) {
					return
				}
				continue
			}
			b.Reset()
			if pair == nil || meta == nil {
				logger.Get().Warnf("Consul key %s not found, retry in %s", key, w.config.RetryInterval)
				if !sleep(ctx, w.config.RetryInterval) {
					return
				}
				continue
			}
			if meta.LastIndex < curIndex {
				// index went backwards, start over
				curIndex = 0
				continue
			}
			if meta.LastIndex == curIndex {
				continue
			}
			if err := callback(pair.Value); err != nil {
				logger.Get().Errorf("Callback error: %v, with value: %s", err, string(pair.Value))
			}
			curIndex = meta.LastIndex
		}
	}()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
