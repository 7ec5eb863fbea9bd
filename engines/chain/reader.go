package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/engines/contracts"
)

// EVMClient is the subset of ethclient used by the reader
type EVMClient interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

func DialEVMClient(endpoint string) (*ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.Join(constants.ErrChainReaderLoadFailed, errors.New("rpc url required"))
	}
	client, err := ethclient.Dial(trimmed)
	if err != nil {
		return nil, errors.Join(constants.ErrChainReaderLoadFailed, err)
	}
	return client, nil
}

type Reader struct {
	client    EVMClient
	dataStore common.Address
}

func NewReader(client EVMClient, dataStore common.Address) *Reader {
	return &Reader{
		client:    client,
		dataStore: dataStore,
	}
}

func (engine *Reader) GetId() string {
	return "EVMChainReader"
}

// VerifyChainId makes sure the rpc serves the configured chain
func (engine *Reader) VerifyChainId(ctx context.Context, expected int64) error {
	chainId, err := engine.client.ChainID(ctx)
	if err != nil {
		return errors.Join(constants.ErrChainReadFailed, err)
	}
	if chainId.Cmp(big.NewInt(expected)) != 0 {
		return errors.Join(constants.ErrUnsupportedChain, fmt.Errorf("rpc serves chain %s, configured %d", chainId, expected))
	}
	return nil
}

func (engine *Reader) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	result, err := engine.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, errors.Join(constants.ErrChainReadFailed, fmt.Errorf("call %s", to), err)
	}
	return result, nil
}

func (engine *Reader) GetUint(ctx context.Context, key common.Hash) (*big.Int, error) {
	data, err := contracts.EncodeGetUint(key)
	if err != nil {
		return nil, err
	}
	result, err := engine.call(ctx, engine.dataStore, data)
	if err != nil {
		return nil, err
	}
	return contracts.DecodeGetUint(result)
}

func (engine *Reader) GetLatestBlockTimestamp(ctx context.Context) (int64, error) {
	header, err := engine.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, errors.Join(constants.ErrChainReadFailed, err)
	}
	if header == nil {
		return 0, errors.Join(constants.ErrChainReadFailed, errors.New("latest header missing"))
	}
	return int64(header.Time), nil
}

func (engine *Reader) BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	data, err := contracts.EncodeBalanceOf(owner)
	if err != nil {
		return nil, err
	}
	result, err := engine.call(ctx, token, data)
	if err != nil {
		return nil, err
	}
	return contracts.DecodeBalanceOf(result)
}

func (engine *Reader) GetTransactionLogs(ctx context.Context, txHash common.Hash) ([]types.Log, error) {
	receipt, err := engine.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, errors.Join(constants.ErrReceiptFetchFailed, fmt.Errorf("transaction %s not found", txHash.Hex()))
		}
		return nil, errors.Join(constants.ErrReceiptFetchFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Join(constants.ErrReceiptFetchFailed, fmt.Errorf("transaction %s failed", txHash.Hex()))
	}
	logs := make([]types.Log, 0, len(receipt.Logs))
	for _, log := range receipt.Logs {
		if log != nil {
			logs = append(logs, *log)
		}
	}
	return logs, nil
}

func (engine *Reader) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	number, err := engine.client.BlockNumber(ctx)
	if err != nil {
		return 0, errors.Join(constants.ErrChainReadFailed, err)
	}
	return number, nil
}

// FilterTriggerLogs returns the emitter's fee distribution logs within [fromBlock, toBlock]
func (engine *Reader) FilterTriggerLogs(ctx context.Context, emitter common.Address, fromBlock uint64, toBlock uint64) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{emitter},
		Topics: [][]common.Hash{
			enums.EVENT_LOG_SIGNATURES,
			enums.TRIGGER_EVENT_NAME_HASHES,
		},
	}
	slog.Debug("filtering trigger logs", "emitter", emitter, "from", fromBlock, "to", toBlock)
	logs, err := engine.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Join(constants.ErrLogsFetchFailed, err)
	}
	return lo.Filter(logs, func(log types.Log, _ int) bool {
		return !log.Removed
	}), nil
}
