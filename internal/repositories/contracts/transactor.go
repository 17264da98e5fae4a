package contracts

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Transactor signs marketplace transactions with the configured wallet and
// allocates nonces locally so concurrent writes do not collide
type Transactor struct {
	// config
	legacyTx   bool // use legacy transaction fee, for local node testing
	privateKey *ecdsa.PrivateKey
	from       common.Address

	// state
	nonce   uint64
	chainID *big.Int
	mutex   sync.Mutex

	// deps
	client EthereumClient
	log    interfaces.ILogger
}

func NewTransactor(client EthereumClient, privateKey *ecdsa.PrivateKey, log interfaces.ILogger) (*Transactor, error) {
	from, err := lib.PrivKeyToAddr(privateKey)
	if err != nil {
		return nil, err
	}
	return &Transactor{
		privateKey: privateKey,
		from:       from,
		client:     client,
		log:        log,
	}, nil
}

func (t *Transactor) SetLegacyTx(legacyTx bool) {
	t.legacyTx = legacyTx
}

func (t *Transactor) From() common.Address {
	return t.from
}

// TransactOpts returns signer options carrying the next nonce and the value to send
func (t *Transactor) TransactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	chainID, err := t.getChainID(ctx)
	if err != nil {
		return nil, err
	}

	transactOpts, err := bind.NewKeyedTransactorWithChainID(t.privateKey, chainID)
	if err != nil {
		return nil, lib.WrapError(ErrRejected, err)
	}

	if t.legacyTx {
		gasPrice, err := t.client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, lib.WrapError(ErrProvider, err)
		}
		transactOpts.GasPrice = gasPrice
	}

	nonce, err := t.getNonce(ctx)
	if err != nil {
		return nil, err
	}

	if value == nil {
		value = big.NewInt(0)
	}

	transactOpts.Value = value
	transactOpts.Nonce = nonce
	transactOpts.Context = ctx

	return transactOpts, nil
}

// ReleaseNonce hands the nonce back if the transaction using it was never accepted by the node
func (t *Transactor) ReleaseNonce(nonce *big.Int) {
	if nonce == nil {
		return
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.nonce == nonce.Uint64()+1 {
		t.nonce = nonce.Uint64()
	}
}

func (t *Transactor) getChainID(ctx context.Context) (*big.Int, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.chainID != nil {
		return t.chainID, nil
	}

	chainID, err := t.client.ChainID(ctx)
	if err != nil {
		return nil, lib.WrapError(ErrProvider, err)
	}
	t.chainID = chainID
	return chainID, nil
}

func (t *Transactor) getNonce(ctx context.Context) (*big.Int, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	nonce := &big.Int{}
	blockchainNonce, err := t.client.PendingNonceAt(ctx, t.from)
	if err != nil {
		return nil, lib.WrapError(ErrProvider, err)
	}

	if t.nonce > blockchainNonce {
		nonce.SetUint64(t.nonce)
	} else {
		nonce.SetUint64(blockchainNonce)
	}

	t.nonce = nonce.Uint64() + 1

	return nonce, nil
}
