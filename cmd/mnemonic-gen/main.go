package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"coin-custody.backend/pkg/hdwallet"
)

// Prints a fresh BIP39 mnemonic plus the account-level extended public
// key per supported coin type. The mnemonic goes into HD_WALLET_MNEMONIC;
// the xpubs can be handed to auditors without exposing any private key.
func main() {
	showXpubs := flag.Bool("xpubs", true, "print account-level extended public keys")
	words := flag.String("mnemonic", "", "derive xpubs from an existing mnemonic instead of generating one")
	flag.Parse()

	mnemonic := strings.TrimSpace(*words)
	if mnemonic == "" {
		generated, err := hdwallet.NewMnemonic()
		if err != nil {
			log.Fatalf("failed to generate mnemonic: %v", err)
		}
		mnemonic = generated
		fmt.Println("Generated HD wallet mnemonic")
	} else {
		fmt.Println("Using provided mnemonic")
	}
	fmt.Printf("HD_WALLET_MNEMONIC=%q\n", mnemonic)

	if !*showXpubs {
		return
	}

	lines, err := buildXpubLines(mnemonic)
	if err != nil {
		log.Fatalf("failed to derive xpubs: %v", err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

func buildXpubLines(mnemonic string) ([]string, error) {
	wallet, err := hdwallet.New(mnemonic)
	if err != nil {
		return nil, err
	}

	// All supported chains are EVM and share coin type 60.
	xpub, err := wallet.XPub(60)
	if err != nil {
		return nil, err
	}
	return []string{
		fmt.Sprintf("XPUB_EVM=%s", xpub),
	}, nil
}
