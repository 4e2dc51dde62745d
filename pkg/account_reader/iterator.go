package account_reader

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/anchorfree/account-filter/pkg/logger"
	"github.com/anchorfree/account-filter/pkg/types"
)

// Accounts may hold up to 10MiB of data, base64 inflates it by a third.
var MaxLineSize = 16 * 1024 * 1024

var pPool fastjson.ParserPool

// AccountIterator reads newline delimited JSON account updates:
//
//	{"pubkey":"<base58>","owner":"<base58>","slot":1,"lamports":1,"write_version":1,"is_startup":false,"data":"<base64>"}
//
// Lines that can not be decoded are logged and skipped.
type AccountIterator struct {
	event   *types.AccountEvent
	err     error
	scanner *bufio.Scanner
	skipped int64
}

var _ types.AccountIterator = (*AccountIterator)(nil)

func NewIterator(inp io.Reader) *AccountIterator {
	scanner := bufio.NewScanner(inp)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &AccountIterator{
		scanner: scanner,
	}
}

func (ai *AccountIterator) Next() bool {
	for ai.scanner.Scan() {
		line := bytes.TrimSpace(ai.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		event, err := parseEvent(line)
		if err != nil {
			ai.skipped++
			logger.Get().Warnf("Skipping malformed account update: %v", err)
			continue
		}
		ai.event = event
		return true
	}
	ai.event = nil
	ai.err = ai.scanner.Err()
	return false
}

func (ai *AccountIterator) At() *types.AccountEvent {
	return ai.event
}

func (ai *AccountIterator) Err() error {
	return ai.err
}

// Skipped returns the number of malformed lines seen so far.
func (ai *AccountIterator) Skipped() int64 {
	return ai.skipped
}

func parseEvent(line []byte) (*types.AccountEvent, error) {
	parser := pPool.Get()
	defer pPool.Put(parser)

	v, err := parser.ParseBytes(line)
	if err != nil {
		return nil, errors.Wrap(err, "json parsing error")
	}
	pubkey, err := parseKey(v, "pubkey")
	if err != nil {
		return nil, err
	}
	owner, err := parseKey(v, "owner")
	if err != nil {
		return nil, err
	}
	event := &types.AccountEvent{
		Pubkey:       pubkey,
		Owner:        owner,
		Slot:         v.GetUint64("slot"),
		Lamports:     v.GetUint64("lamports"),
		WriteVersion: v.GetUint64("write_version"),
		IsStartup:    v.GetBool("is_startup"),
		// the scanner reuses its buffer
		Message: append([]byte(nil), line...),
	}
	if data := v.GetStringBytes("data"); len(data) > 0 {
		event.Data = make([]byte, base64.StdEncoding.DecodedLen(len(data)))
		n, err := base64.StdEncoding.Decode(event.Data, data)
		if err != nil {
			return nil, errors.Wrap(err, "data is not base64")
		}
		event.Data = event.Data[:n]
	}
	return event, nil
}

func parseKey(v *fastjson.Value, field string) (solana.PublicKey, error) {
	raw := v.GetStringBytes(field)
	if raw == nil {
		return solana.PublicKey{}, errors.Errorf("missing %s", field)
	}
	key, err := solana.PublicKeyFromBase58(string(raw))
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid %s %q", field, raw)
	}
	return key, nil
}
