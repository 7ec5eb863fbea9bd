package configuration

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/constants"
)

func TestGetContractAddress(t *testing.T) {
	assert := assert.New(t)

	address, err := GetContractAddress(AVALANCHE, CONTRACT_DATA_STORE)
	assert.Nil(err)
	assert.Equal(common.HexToAddress("0x2F0b22339414ADeD7D5F06f9D604c7fF5b2fe3f6"), address)

	address, err = GetContractAddress(ARBITRUM_SEPOLIA, CONTRACT_READER)
	assert.Nil(err)
	assert.Equal(common.Address{}, address)

	_, err = GetContractAddress(1, CONTRACT_DATA_STORE)
	assert.True(errors.Is(err, constants.ErrUnsupportedChain))

	_, err = GetContractAddress(ARBITRUM, "vault")
	assert.True(errors.Is(err, constants.ErrUnsupportedContract))
}

func TestGetSubgraphFragment(t *testing.T) {
	assert := assert.New(t)

	fragment, err := GetSubgraphFragment(AVALANCHE, constants.SUBGRAPH_ENDPOINT_REFERRALS)
	assert.Nil(err)
	assert.Equal("gmx-avalanche-referrals", fragment)

	fragment, err = GetSubgraphFragment(ARBITRUM, constants.SUBGRAPH_ENDPOINT_STATS_V1)
	assert.Nil(err)
	assert.Equal("gmx-arbitrum-stats", fragment)

	_, err = GetSubgraphFragment(ARBITRUM, "prices")
	assert.True(errors.Is(err, constants.ErrUnsupportedEndpoint))

	_, err = GetSubgraphFragment(AVALANCHE_FUJI, constants.SUBGRAPH_ENDPOINT_REFERRALS)
	assert.True(errors.Is(err, constants.ErrUnsupportedChain))

	assert.Equal("https://host/a/frag/api", BuildSubgraphUrl("https://host/a/", "frag"))
	assert.Equal("https://host/a/frag/api", BuildSubgraphUrl("https://host/a", "frag"))
}
