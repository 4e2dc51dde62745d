package types

import "github.com/gagliardetto/solana-go"

// AccountEvent is a single account state change as seen by the pipeline.
type AccountEvent struct {
	Pubkey       solana.PublicKey
	Owner        solana.PublicKey
	Slot         uint64
	Lamports     uint64
	WriteVersion uint64
	IsStartup    bool
	Data         []byte

	// Raw record the event was decoded from, forwarded as is
	Message []byte
}

func (e *AccountEvent) MessageString() string {
	return string(e.Message)
}
