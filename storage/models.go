package storage

import "github.com/gagliardetto/solana-go"

// Profile is a named wallet the CLI and API can look up cards for.
// Only the public key is stored; nothing here can sign.
type Profile struct {
	Name   string           `json:"name"`
	Wallet solana.PublicKey `json:"wallet"`
}
