package accounts_selector

import (
	"github.com/anchorfree/account-filter/pkg/logger"
	"github.com/anchorfree/account-filter/pkg/types"
)

// Iterator yields only the upstream events accepted by the selector.
type Iterator struct {
	iterator types.AccountIterator
	selector Selector
	current  func() *AccountsSelector
	metrics  *Metrics
	entry    *types.AccountEvent
	err      error
}

var _ types.AccountIterator = (*Iterator)(nil)

// NewIterator wraps upstream with sel. metrics may be nil. A sel that can be
// reloaded, like Manager, is resolved once per record.
func NewIterator(upstream types.AccountIterator, sel Selector, metrics *Metrics) *Iterator {
	it := &Iterator{
		iterator: upstream,
		selector: sel,
		metrics:  metrics,
	}
	if s, ok := sel.(interface{ Current() *AccountsSelector }); ok {
		it.current = s.Current
	}
	return it
}

func (it *Iterator) Next() bool {
	for it.iterator.Next() {
		entry := it.iterator.At()
		sel := it.selector
		if it.current != nil {
			sel = it.current()
		}
		// a disabled selector can never select, skip the lookups altogether
		if sel.IsEnabled() && sel.IsAccountSelected(entry.Pubkey[:], entry.Owner[:]) {
			it.entry = entry
			it.metrics.incSelected()
			return true
		}
		it.metrics.incSkipped()
	}
	it.entry = nil
	it.err = it.iterator.Err()
	if it.err != nil {
		logger.Get().Debugf("Upstream iterator error: %v", it.err)
	}
	return false
}

func (it *Iterator) At() *types.AccountEvent {
	return it.entry
}

func (it *Iterator) Err() error {
	return it.err
}
