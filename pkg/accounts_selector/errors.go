package accounts_selector

import "github.com/pkg/errors"

var (
	ErrHashSlotsCount     = errors.New("hash slots count should be 2")
	ErrHashSlotOutOfRange = errors.New("hash slot is out of uint16 range")
	ErrKeyDecode          = errors.New("could not decode base58 key")
)
