package contracts

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const testPrivKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// fakeClient implements the calls used by transactor and receipt waiter,
// any other call panics on the nil embedded interface
type fakeClient struct {
	EthereumClient

	chainID      *big.Int
	chainIDErr   error
	pendingNonce uint64
	receipts     map[common.Hash]*types.Receipt
	callErr      error
	mu           sync.Mutex
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		chainID:  big.NewInt(31337),
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

func (c *fakeClient) ChainID(ctx context.Context) (*big.Int, error) {
	if c.chainIDErr != nil {
		return nil, c.chainIDErr
	}
	return c.chainID, nil
}

func (c *fakeClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingNonce, nil
}

func (c *fakeClient) setPendingNonce(nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingNonce = nonce
}

func (c *fakeClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (c *fakeClient) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return nil, c.callErr
}

func (c *fakeClient) SupportsSubscriptions() bool {
	return false
}

// revertDataError mimics the json-rpc error returned by nodes for reverted calls
type revertDataError struct {
	data string
}

func (e revertDataError) Error() string          { return "execution reverted" }
func (e revertDataError) ErrorData() interface{} { return e.data }

func newRevertDataError(t *testing.T, reason string) revertDataError {
	stringTy, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringTy}}.Pack(reason)
	require.NoError(t, err)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return revertDataError{data: hexutil.Encode(append(selector, packed...))}
}

func testKey(t *testing.T) *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(testPrivKey)
	require.NoError(t, err)
	return key
}

func signedTestTx(t *testing.T, chainID *big.Int, nonce uint64) *types.Transaction {
	to := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      100000,
		GasPrice: big.NewInt(1),
		Value:    big.NewInt(0),
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), testKey(t))
	require.NoError(t, err)
	return signed
}
