package accounts_selector

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// HashSlots selects accounts whose slot, the first two address bytes read as
// little-endian uint16, falls in [From, To). From >= To matches nothing.
type HashSlots struct {
	From uint16
	To   uint16
}

func NewHashSlots(slots []int64) (*HashSlots, error) {
	if len(slots) != 2 {
		return nil, errors.Wrapf(ErrHashSlotsCount, "got %d", len(slots))
	}
	for _, slot := range slots {
		if slot < 0 || slot > math.MaxUint16 {
			return nil, errors.Wrapf(ErrHashSlotOutOfRange, "got %d", slot)
		}
	}
	return &HashSlots{From: uint16(slots[0]), To: uint16(slots[1])}, nil
}

// Contains reports false for addresses shorter than two bytes.
func (hs *HashSlots) Contains(account []byte) bool {
	if len(account) < 2 {
		return false
	}
	slot := binary.LittleEndian.Uint16(account)
	return hs.From <= slot && slot < hs.To
}
