// Package hdwallet derives per-order deposit addresses from a single BIP39
// mnemonic. All supported chains are EVM, so every path uses coin type 60
// and addresses differ only by the final index.
package hdwallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	bip39 "github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned when the configured mnemonic fails the
// BIP39 wordlist and checksum validation.
var ErrInvalidMnemonic = errors.New("hdwallet: invalid mnemonic")

// Account is one derived keypair. PrivateKeyHex must be treated as a
// transient secret: encrypt or zero it immediately after use.
type Account struct {
	Address       string // EIP-55 checksummed
	Path          string
	Index         int64
	PrivateKeyHex string
}

// Zero overwrites the private key material in place.
func (a *Account) Zero() {
	b := []byte(a.PrivateKeyHex)
	for i := range b {
		b[i] = 0
	}
	a.PrivateKeyHex = string(b)
}

// Wallet holds the master extended key in memory for the process lifetime.
// The mnemonic itself is not retained.
type Wallet struct {
	master *hdkeychain.ExtendedKey
}

// New builds a wallet from a BIP39 mnemonic. An empty BIP39 passphrase is
// used, matching how the mnemonic was generated.
func New(mnemonic string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("hdwallet: master key derivation failed: %w", err)
	}
	return &Wallet{master: master}, nil
}

// DeriveAccount derives the account at m/44'/coinType'/0'/0/index.
func (w *Wallet) DeriveAccount(coinType uint32, index int64) (*Account, error) {
	if index < 0 {
		return nil, fmt.Errorf("hdwallet: negative index %d", index)
	}

	key := w.master
	steps := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + 0,
		0,
		uint32(index),
	}
	for _, step := range steps {
		var err error
		key, err = key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("hdwallet: derivation step %d failed: %w", step, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("hdwallet: private key extraction failed: %w", err)
	}
	ecdsaKey := privKey.ToECDSA()

	return &Account{
		Address:       ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex(),
		Path:          fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, index),
		Index:         index,
		PrivateKeyHex: fmt.Sprintf("%064x", ecdsaKey.D),
	}, nil
}

// XPub exports the neutered account-level key m/44'/coinType'/0', which can
// regenerate every deposit address without touching private material.
func (w *Wallet) XPub(coinType uint32) (string, error) {
	key := w.master
	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + 0,
	} {
		var err error
		key, err = key.Derive(step)
		if err != nil {
			return "", fmt.Errorf("hdwallet: derivation step %d failed: %w", step, err)
		}
	}
	neutered, err := key.Neuter()
	if err != nil {
		return "", fmt.Errorf("hdwallet: neuter failed: %w", err)
	}
	return neutered.String(), nil
}

// ParsePrivateKeyHex turns a derived key back into a signing key.
func ParsePrivateKeyHex(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("hdwallet: bad private key: %w", err)
	}
	return key, nil
}

// NewMnemonic generates a fresh 12-word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("hdwallet: entropy generation failed: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("hdwallet: mnemonic generation failed: %w", err)
	}
	return mnemonic, nil
}
