package mock

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type SimpleChainReaderOpts struct {
	Uints           map[common.Hash]*big.Int
	Balances        map[common.Address]map[common.Address]*big.Int
	LatestTimestamp int64
	FailWithError   error
}

type SimpleChainReader struct {
	opts *SimpleChainReaderOpts
}

func InitSimpleChainReader(opts *SimpleChainReaderOpts) *SimpleChainReader {
	if opts == nil {
		opts = &SimpleChainReaderOpts{}
	}
	if opts.Uints == nil {
		opts.Uints = map[common.Hash]*big.Int{}
	}
	if opts.Balances == nil {
		opts.Balances = map[common.Address]map[common.Address]*big.Int{}
	}
	return &SimpleChainReader{opts: opts}
}

func (engine *SimpleChainReader) GetId() string {
	return "SimpleChainReader"
}

func (engine *SimpleChainReader) GetOpts() *SimpleChainReaderOpts {
	return engine.opts
}

func (engine *SimpleChainReader) SetBalance(token common.Address, owner common.Address, balance *big.Int) {
	if engine.opts.Balances[token] == nil {
		engine.opts.Balances[token] = map[common.Address]*big.Int{}
	}
	engine.opts.Balances[token][owner] = balance
}

func (engine *SimpleChainReader) GetUint(ctx context.Context, key common.Hash) (*big.Int, error) {
	if engine.opts.FailWithError != nil {
		return nil, engine.opts.FailWithError
	}
	value, ok := engine.opts.Uints[key]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(value), nil
}

func (engine *SimpleChainReader) GetLatestBlockTimestamp(ctx context.Context) (int64, error) {
	if engine.opts.FailWithError != nil {
		return 0, engine.opts.FailWithError
	}
	return engine.opts.LatestTimestamp, nil
}

func (engine *SimpleChainReader) BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	if engine.opts.FailWithError != nil {
		return nil, engine.opts.FailWithError
	}
	balances, ok := engine.opts.Balances[token]
	if !ok {
		return nil, fmt.Errorf("unknown token %s", token)
	}
	balance, ok := balances[owner]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(balance), nil
}
