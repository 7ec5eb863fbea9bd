package contracts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/constants"
)

// ReferralRewardParam mirrors the (account, amount) tuple of depositReferralRewards
type ReferralRewardParam struct {
	Account common.Address
	Amount  *big.Int
}

func pack(contract abi.ABI, method string, args ...any) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, errors.Join(constants.ErrCallEncodingFailed, fmt.Errorf("%s", method), err)
	}
	return data, nil
}

func unpackUint(contract abi.ABI, method string, data []byte) (*big.Int, error) {
	values, err := contract.Unpack(method, data)
	if err != nil {
		return nil, errors.Join(constants.ErrCallDecodingFailed, fmt.Errorf("%s", method), err)
	}
	if len(values) != 1 {
		return nil, errors.Join(constants.ErrCallDecodingFailed, fmt.Errorf("%s returned %d values", method, len(values)))
	}
	value, ok := values[0].(*big.Int)
	if !ok {
		return nil, errors.Join(constants.ErrCallDecodingFailed, fmt.Errorf("%s returned %T", method, values[0]))
	}
	return value, nil
}

func EncodeDistribute(totalRebateUsd *big.Int, totalBonusRewards *big.Int, feesV1Usd *big.Int, feesV2Usd *big.Int) ([]byte, error) {
	return pack(FeeDistributorABI, METHOD_DISTRIBUTE, totalRebateUsd, totalBonusRewards, feesV1Usd, feesV2Usd)
}

func EncodeDepositReferralRewards(token common.Address, distributionId *big.Int, accounts []common.Address, amounts []*big.Int) ([]byte, error) {
	if len(accounts) != len(amounts) {
		return nil, errors.Join(constants.ErrPayoutListLengthMismatch, fmt.Errorf("accounts: %d, amounts: %d", len(accounts), len(amounts)))
	}
	params := make([]ReferralRewardParam, len(accounts))
	for i := range accounts {
		params[i] = ReferralRewardParam{Account: accounts[i], Amount: amounts[i]}
	}
	return pack(FeeDistributorABI, METHOD_DEPOSIT_REFERRAL_REWARDS, token, distributionId, params)
}

func EncodeGetUint(key common.Hash) ([]byte, error) {
	return pack(DataStoreABI, METHOD_GET_UINT, [32]byte(key))
}

func DecodeGetUint(data []byte) (*big.Int, error) {
	return unpackUint(DataStoreABI, METHOD_GET_UINT, data)
}

func EncodeBalanceOf(owner common.Address) ([]byte, error) {
	return pack(ERC20ABI, METHOD_BALANCE_OF, owner)
}

func DecodeBalanceOf(data []byte) (*big.Int, error) {
	return unpackUint(ERC20ABI, METHOD_BALANCE_OF, data)
}

// DecodeDepositReferralRewards is the inverse of EncodeDepositReferralRewards, used to
// render produced call data in reports
func DecodeDepositReferralRewards(data []byte) (token common.Address, distributionId *big.Int, params []ReferralRewardParam, err error) {
	method, ok := FeeDistributorABI.Methods[METHOD_DEPOSIT_REFERRAL_REWARDS]
	if !ok || len(data) < 4 || string(data[:4]) != string(method.ID) {
		return common.Address{}, nil, nil, errors.Join(constants.ErrCallDecodingFailed, errors.New("not a depositReferralRewards call"))
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Address{}, nil, nil, errors.Join(constants.ErrCallDecodingFailed, err)
	}
	token, _ = values[0].(common.Address)
	distributionId, _ = values[1].(*big.Int)
	params = *abi.ConvertType(values[2], new([]ReferralRewardParam)).(*[]ReferralRewardParam)
	return token, distributionId, params, nil
}
