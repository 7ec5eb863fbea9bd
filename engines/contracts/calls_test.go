package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/constants"
)

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func TestSelectors(t *testing.T) {
	assert := assert.New(t)

	data, err := EncodeDistribute(big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4))
	assert.Nil(err)
	assert.Equal(selector("distribute(uint256,uint256,uint256,uint256)"), data[:4])
	assert.Len(data, 4+4*32)
	assert.Equal(int64(4), new(big.Int).SetBytes(data[4+3*32:]).Int64())

	data, err = EncodeBalanceOf(common.HexToAddress("0x01"))
	assert.Nil(err)
	assert.Equal(common.FromHex("0x70a08231"), data[:4])

	data, err = EncodeGetUint(common.HexToHash(constants.DEFAULT_ES_GMX_REWARDS_KEY))
	assert.Nil(err)
	assert.Equal(selector("getUint(bytes32)"), data[:4])
	assert.Equal(common.HexToHash(constants.DEFAULT_ES_GMX_REWARDS_KEY).Bytes(), data[4:])

	data, err = EncodeDepositReferralRewards(common.HexToAddress("0x0a"), big.NewInt(1), []common.Address{}, []*big.Int{})
	assert.Nil(err)
	assert.Equal(selector("depositReferralRewards(address,uint256,(address,uint256)[])"), data[:4])
}

func TestDepositReferralRewardsRoundTrip(t *testing.T) {
	assert := assert.New(t)

	token := common.HexToAddress("0x82af49447d8a07e3bd95bd0d56f35241523fbab1")
	accounts := []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02")}
	amounts := []*big.Int{big.NewInt(10), new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)}

	data, err := EncodeDepositReferralRewards(token, big.NewInt(42), accounts, amounts)
	assert.Nil(err)

	decodedToken, distributionId, params, err := DecodeDepositReferralRewards(data)
	assert.Nil(err)
	assert.Equal(token, decodedToken)
	assert.Equal(int64(42), distributionId.Int64())
	assert.Len(params, 2)
	assert.Equal(accounts[1], params[1].Account)
	assert.Equal(0, amounts[1].Cmp(params[1].Amount))

	_, err = EncodeDepositReferralRewards(token, big.NewInt(42), accounts, amounts[:1])
	assert.ErrorIs(err, constants.ErrPayoutListLengthMismatch)

	_, _, _, err = DecodeDepositReferralRewards([]byte{1, 2})
	assert.ErrorIs(err, constants.ErrCallDecodingFailed)
}

func TestDecodeUint(t *testing.T) {
	assert := assert.New(t)

	encoded := common.LeftPadBytes(big.NewInt(123456).Bytes(), 32)
	value, err := DecodeGetUint(encoded)
	assert.Nil(err)
	assert.Equal(int64(123456), value.Int64())

	value, err = DecodeBalanceOf(encoded)
	assert.Nil(err)
	assert.Equal(int64(123456), value.Int64())

	_, err = DecodeBalanceOf([]byte{1})
	assert.ErrorIs(err, constants.ErrCallDecodingFailed)
}
