package accounts_selector

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchorfree/account-filter/pkg/promutils"
	"github.com/anchorfree/account-filter/pkg/types"
)

type sliceIterator struct {
	events []*types.AccountEvent
	entry  *types.AccountEvent
	err    error
}

func (si *sliceIterator) Next() bool {
	if len(si.events) == 0 {
		return false
	}
	si.entry, si.events = si.events[0], si.events[1:]
	return true
}

func (si *sliceIterator) At() *types.AccountEvent {
	return si.entry
}

func (si *sliceIterator) Err() error {
	return si.err
}

type countingSelector struct {
	Selector
	calls int
}

func (cs *countingSelector) IsAccountSelected(account, owner []byte) bool {
	cs.calls++
	return cs.Selector.IsAccountSelected(account, owner)
}

func accountEvent(pubkey, owner []byte) *types.AccountEvent {
	e := &types.AccountEvent{}
	copy(e.Pubkey[:], pubkey)
	copy(e.Owner[:], owner)
	return e
}

func collect(it types.AccountIterator) []*types.AccountEvent {
	var events []*types.AccountEvent
	for it.Next() {
		events = append(events, it.At())
	}
	return events
}

func TestIterator(t *testing.T) {
	as, err := New(nil, []string{serumKey}, []int64{42, 300})
	require.NoError(t, err)
	serum := solana.MustPublicKeyFromBase58(serumKey)

	upstream := &sliceIterator{events: []*types.AccountEvent{
		accountEvent(address(12), nil),
		accountEvent(address(45), nil),
		accountEvent(address(1), serum[:]),
		accountEvent(address(0, 2), nil),
	}}
	m := NewMetrics()
	it := NewIterator(upstream, as, m)

	events := collect(it)
	require.Len(t, events, 2)
	assert.Equal(t, byte(45), events[0].Pubkey[0])
	assert.Equal(t, serum, events[1].Owner)
	assert.Nil(t, it.At())
	assert.NoError(t, it.Err())

	assert.Equal(t, float64(2), promutils.CounterValue(m.selected))
	assert.Equal(t, float64(2), promutils.CounterValue(m.skipped))

	rendered, err := promutils.Collect(m.events)
	require.NoError(t, err)
	assert.Contains(t, rendered, `accounts_selector_events_total{result="selected"}`)
}

func TestIterator_Disabled(t *testing.T) {
	as, err := New(nil, nil, nil)
	require.NoError(t, err)
	cs := &countingSelector{Selector: as}

	upstream := &sliceIterator{events: []*types.AccountEvent{
		accountEvent(address(), nil),
		accountEvent(address(1), nil),
	}}
	it := NewIterator(upstream, cs, nil)
	assert.Empty(t, collect(it))
	assert.Equal(t, 0, cs.calls, "disabled selector is never evaluated")
}

func TestIterator_SelectAll(t *testing.T) {
	upstream := &sliceIterator{events: []*types.AccountEvent{
		accountEvent(address(), nil),
		accountEvent(address(1), nil),
		accountEvent(address(2), nil),
	}}
	assert.Len(t, collect(NewIterator(upstream, Default(), nil)), 3)
}

func TestIterator_UpstreamError(t *testing.T) {
	upstreamErr := errors.New("broken pipe")
	upstream := &sliceIterator{
		events: []*types.AccountEvent{accountEvent(address(), nil)},
		err:    upstreamErr,
	}
	it := NewIterator(upstream, Default(), nil)
	assert.True(t, it.Next())
	assert.False(t, it.Next())
	assert.Equal(t, upstreamErr, it.Err())
}

type snapshotSelector struct {
	snapshot *AccountsSelector
	current  int
}

func (ss *snapshotSelector) Current() *AccountsSelector {
	ss.current++
	return ss.snapshot
}

func (ss *snapshotSelector) IsEnabled() bool {
	panic("evaluated without a snapshot")
}

func (ss *snapshotSelector) IsAccountSelected(account, owner []byte) bool {
	panic("evaluated without a snapshot")
}

func TestIterator_ResolvesSnapshotPerRecord(t *testing.T) {
	as, err := New([]string{zeroKey}, nil, nil)
	require.NoError(t, err)
	ss := &snapshotSelector{snapshot: as}

	upstream := &sliceIterator{events: []*types.AccountEvent{
		accountEvent(address(), nil),
		accountEvent(address(1), nil),
		accountEvent(address(), nil),
	}}
	assert.Len(t, collect(NewIterator(upstream, ss, nil)), 2)
	assert.Equal(t, 3, ss.current)
}

func TestIterator_ManagerReload(t *testing.T) {
	m := NewManager(Default(), nil)
	upstream := &sliceIterator{events: []*types.AccountEvent{
		accountEvent(address(1), nil),
		accountEvent(address(1), nil),
	}}
	it := NewIterator(upstream, m, nil)
	require.True(t, it.Next())

	empty, err := New(nil, nil, nil)
	require.NoError(t, err)
	m.Apply(empty)
	assert.False(t, it.Next())
}
