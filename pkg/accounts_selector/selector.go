package accounts_selector

import (
	"github.com/anchorfree/account-filter/pkg/logger"
)

// Selector decides whether an account update is forwarded downstream.
type Selector interface {
	IsEnabled() bool
	IsAccountSelected(account, owner []byte) bool
}

// AccountsSelector is immutable once built and safe for concurrent use.
type AccountsSelector struct {
	accounts          map[string]struct{}
	owners            map[string]struct{}
	selectAllAccounts bool
	hashSlots         *HashSlots
}

var _ Selector = (*AccountsSelector)(nil)

// Default selects every account. Note that New(nil, nil, nil) selects nothing.
func Default() *AccountsSelector {
	return &AccountsSelector{
		accounts:          map[string]struct{}{},
		owners:            map[string]struct{}{},
		selectAllAccounts: true,
	}
}

// New builds a selector from base58 account and owner keys and an optional
// [from, to) hash slot pair. A "*" account selects everything and the rest
// of the arguments are ignored.
func New(accounts, owners []string, hashSlots []int64) (*AccountsSelector, error) {
	logger.Get().Infof("Creating accounts selector from accounts: %v, owners: %v, hash slots: %v", accounts, owners, hashSlots)

	if hasSelectAll(accounts) {
		return Default(), nil
	}

	accountSet, err := decodeKeys("accounts", accounts)
	if err != nil {
		return nil, err
	}
	ownerSet, err := decodeKeys("owners", owners)
	if err != nil {
		return nil, err
	}
	as := &AccountsSelector{
		accounts: accountSet,
		owners:   ownerSet,
	}
	if len(hashSlots) > 0 {
		if as.hashSlots, err = NewHashSlots(hashSlots); err != nil {
			return nil, err
		}
	}
	return as, nil
}

func NewFromConfig(cfg *Config) (*AccountsSelector, error) {
	if cfg == nil {
		logger.Get().Info("No accounts selector configured, selecting all accounts")
		return Default(), nil
	}
	return New(cfg.Accounts, cfg.Owners, cfg.HashSlots)
}

func (as *AccountsSelector) IsAccountSelected(account, owner []byte) bool {
	if as.hashSlots != nil && as.hashSlots.Contains(account) {
		return true
	}
	if as.selectAllAccounts {
		return true
	}
	if _, ok := as.accounts[string(account)]; ok {
		return true
	}
	_, ok := as.owners[string(owner)]
	return ok
}

// IsEnabled reports whether any account could be selected at all.
func (as *AccountsSelector) IsEnabled() bool {
	return as.hashSlots != nil || as.selectAllAccounts || len(as.accounts) > 0 || len(as.owners) > 0
}

func (as *AccountsSelector) HashSlots() (HashSlots, bool) {
	if as.hashSlots == nil {
		return HashSlots{}, false
	}
	return *as.hashSlots, true
}

func (as *AccountsSelector) SelectsAll() bool {
	return as.selectAllAccounts
}
