package types

// AccountIterator interface
type AccountIterator interface {
	Next() bool
	At() *AccountEvent
	Err() error
}
