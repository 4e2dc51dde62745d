package accounts_selector

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const selectAllKey = "*"

func hasSelectAll(keys []string) bool {
	for _, key := range keys {
		if key == selectAllKey {
			return true
		}
	}
	return false
}

// decodeKeys turns base58 keys into a set indexed by the decoded bytes.
func decodeKeys(kind string, keys []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(keys))
	for i, key := range keys {
		decoded, err := base58.Decode(key)
		if err != nil {
			return nil, errors.Wrapf(ErrKeyDecode, "%s[%d] %q: %v", kind, i, key, err)
		}
		set[string(decoded)] = struct{}{}
	}
	return set, nil
}
