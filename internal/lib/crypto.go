package lib

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

var ErrNoWalletKey = errors.New("neither private key nor mnemonic provided")

func PrivKeyToAddr(privateKey *ecdsa.PrivateKey) (common.Address, error) {
	publicKey := privateKey.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, fmt.Errorf("error casting public key to ECDSA")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA), nil
}

// MnemonicToPrivKey derives the key of account m/44'/60'/0'/0/<accountIndex>
func MnemonicToPrivKey(mnemonic string, accountIndex int) (*ecdsa.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}

	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("m/44'/60'/0'/0/%d", accountIndex))
	if err != nil {
		return nil, err
	}

	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, err
	}

	return wallet.PrivateKey(account)
}

// ResolvePrivateKey prefers explicit private key over mnemonic
func ResolvePrivateKey(privKeyHex string, mnemonic string, accountIndex int) (*ecdsa.PrivateKey, error) {
	if privKeyHex != "" {
		return crypto.HexToECDSA(strings.TrimPrefix(privKeyHex, "0x"))
	}
	if mnemonic != "" {
		return MnemonicToPrivKey(mnemonic, accountIndex)
	}
	return nil, ErrNoWalletKey
}
