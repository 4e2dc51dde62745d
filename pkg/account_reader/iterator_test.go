package account_reader

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	serumKey  = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	systemKey = "11111111111111111111111111111111"
)

func TestAccountIterator(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte("account data"))
	first := `{"pubkey":"` + serumKey + `","owner":"` + systemKey + `","slot":42,"lamports":1000,"write_version":7,"is_startup":true,"data":"` + data + `"}`
	second := `{"pubkey":"` + systemKey + `","owner":"` + serumKey + `","slot":43}`
	raw := strings.Join([]string{
		first,
		"",
		`{"pubkey":"not-base58!","owner":"` + systemKey + `"}`,
		`{"owner":"` + systemKey + `"}`,
		`{"pubkey":"` + serumKey + `","owner":"` + systemKey + `","data":"%%%"}`,
		`not json`,
		"  " + second + "  \r",
	}, "\n")

	ai := NewIterator(strings.NewReader(raw))

	require.True(t, ai.Next())
	event := ai.At()
	assert.Equal(t, solana.MustPublicKeyFromBase58(serumKey), event.Pubkey)
	assert.Equal(t, solana.MustPublicKeyFromBase58(systemKey), event.Owner)
	assert.Equal(t, uint64(42), event.Slot)
	assert.Equal(t, uint64(1000), event.Lamports)
	assert.Equal(t, uint64(7), event.WriteVersion)
	assert.True(t, event.IsStartup)
	assert.Equal(t, []byte("account data"), event.Data)
	assert.Equal(t, first, event.MessageString())

	require.True(t, ai.Next())
	event = ai.At()
	assert.Equal(t, solana.MustPublicKeyFromBase58(systemKey), event.Pubkey)
	assert.Equal(t, uint64(43), event.Slot)
	assert.Nil(t, event.Data)
	assert.False(t, event.IsStartup)
	assert.Equal(t, second, event.MessageString())

	assert.False(t, ai.Next())
	assert.Nil(t, ai.At())
	assert.NoError(t, ai.Err())
	assert.Equal(t, int64(4), ai.Skipped())
}

func TestAccountIterator_MessageIsCopied(t *testing.T) {
	line := `{"pubkey":"` + serumKey + `","owner":"` + systemKey + `"}`
	ai := NewIterator(strings.NewReader(line + "\n" + strings.Replace(line, serumKey, systemKey, 1)))
	require.True(t, ai.Next())
	first := ai.At()
	require.True(t, ai.Next())
	assert.Equal(t, line, first.MessageString())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestAccountIterator_ReadError(t *testing.T) {
	ai := NewIterator(failingReader{})
	assert.False(t, ai.Next())
	assert.EqualError(t, ai.Err(), "read failed")
}
