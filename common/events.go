package common

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

type EventDataItems[T any] struct {
	Items      map[string]T
	ArrayItems map[string][]T
}

func NewEventDataItems[T any]() EventDataItems[T] {
	return EventDataItems[T]{
		Items:      map[string]T{},
		ArrayItems: map[string][]T{},
	}
}

func getItem[T any](items map[string]T, key string, defaultValue ...T) (T, error) {
	if value, ok := items[key]; ok {
		return value, nil
	}
	if len(defaultValue) > 0 {
		return defaultValue[0], nil
	}
	var zero T
	return zero, errors.Join(constants.ErrEventDataKeyNotFound, fmt.Errorf("key '%s'", key))
}

func (items *EventDataItems[T]) Get(key string, defaultValue ...T) (T, error) {
	return getItem(items.Items, key, defaultValue...)
}

func (items *EventDataItems[T]) GetArray(key string, defaultValue ...[]T) ([]T, error) {
	return getItem(items.ArrayItems, key, defaultValue...)
}

// KeyValueEventData is the decoded form of the emitter's EventLogData tuple
type KeyValueEventData struct {
	AddressItems EventDataItems[common.Address]
	UintItems    EventDataItems[*big.Int]
	IntItems     EventDataItems[*big.Int]
	BoolItems    EventDataItems[bool]
	Bytes32Items EventDataItems[common.Hash]
	BytesItems   EventDataItems[[]byte]
	StringItems  EventDataItems[string]
}

func NewKeyValueEventData() *KeyValueEventData {
	return &KeyValueEventData{
		AddressItems: NewEventDataItems[common.Address](),
		UintItems:    NewEventDataItems[*big.Int](),
		IntItems:     NewEventDataItems[*big.Int](),
		BoolItems:    NewEventDataItems[bool](),
		Bytes32Items: NewEventDataItems[common.Hash](),
		BytesItems:   NewEventDataItems[[]byte](),
		StringItems:  NewEventDataItems[string](),
	}
}

func (data *KeyValueEventData) GetUint(key string, defaultValue ...*big.Int) (*big.Int, error) {
	return data.UintItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetUintArray(key string, defaultValue ...[]*big.Int) ([]*big.Int, error) {
	return data.UintItems.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetInt(key string, defaultValue ...*big.Int) (*big.Int, error) {
	return data.IntItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetIntArray(key string, defaultValue ...[]*big.Int) ([]*big.Int, error) {
	return data.IntItems.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetBool(key string, defaultValue ...bool) (bool, error) {
	return data.BoolItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetBoolArray(key string, defaultValue ...[]bool) ([]bool, error) {
	return data.BoolItems.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetAddress(key string, defaultValue ...common.Address) (common.Address, error) {
	return data.AddressItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetAddressArray(key string, defaultValue ...[]common.Address) ([]common.Address, error) {
	return data.AddressItems.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetBytes32(key string, defaultValue ...common.Hash) (common.Hash, error) {
	return data.Bytes32Items.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetBytes32Array(key string, defaultValue ...[]common.Hash) ([]common.Hash, error) {
	return data.Bytes32Items.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetBytes(key string, defaultValue ...[]byte) ([]byte, error) {
	return data.BytesItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetBytesArray(key string, defaultValue ...[][]byte) ([][]byte, error) {
	return data.BytesItems.GetArray(key, defaultValue...)
}

func (data *KeyValueEventData) GetString(key string, defaultValue ...string) (string, error) {
	return data.StringItems.Get(key, defaultValue...)
}

func (data *KeyValueEventData) GetStringArray(key string, defaultValue ...[]string) ([]string, error) {
	return data.StringItems.GetArray(key, defaultValue...)
}

type DecodedEvent struct {
	EventNameHash common.Hash
	EventName     string
	MsgSender     common.Address
	BlockNumber   uint64
	TxHash        common.Hash
	Data          *KeyValueEventData
}

func (event *DecodedEvent) TriggerKind() enums.ETriggerKind {
	return enums.TriggerKindFromEventNameHash(event.EventNameHash)
}

type FeeDistributionDataReceived struct {
	NumberOfChainsReceivedData *big.Int
	FeeAmountGmxCurrentChain   *big.Int
	ReceivedData               []byte
	IsBridgingCompleted        bool
}

func ParseFeeDistributionDataReceived(event *DecodedEvent) (*FeeDistributionDataReceived, error) {
	if event == nil || event.Data == nil {
		return nil, constants.ErrEventDecodeFailed
	}
	data := event.Data
	result := FeeDistributionDataReceived{}
	var errs [4]error
	result.NumberOfChainsReceivedData, errs[0] = data.GetUint("numberOfChainsReceivedData", big.NewInt(0))
	result.FeeAmountGmxCurrentChain, errs[1] = data.GetUint("feeAmountGmxCurrentChain", big.NewInt(0))
	result.ReceivedData, errs[2] = data.GetBytes("receivedData", []byte{})
	result.IsBridgingCompleted, errs[3] = data.GetBool("isBridgingCompleted")
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return &result, nil
}

type FeeDistributionCompleted struct {
	FeesV1Usd                *big.Int
	FeesV2Usd                *big.Int
	FeeAmountGmxCurrentChain *big.Int
	TotalFeeAmountGmx        *big.Int
	TotalGmxBridgedOut       *big.Int
	WntForKeepers            *big.Int
	WntForChainlink          *big.Int
	WntForTreasury           *big.Int
	WntForGlp                *big.Int
	WntForReferralRewards    *big.Int
	EsGmxForReferralRewards  *big.Int
}

func ParseFeeDistributionCompleted(event *DecodedEvent) (*FeeDistributionCompleted, error) {
	if event == nil || event.Data == nil {
		return nil, constants.ErrEventDecodeFailed
	}
	zero := big.NewInt(0)
	result := FeeDistributionCompleted{}
	fields := []struct {
		key    string
		target **big.Int
	}{
		{"feesV1Usd", &result.FeesV1Usd},
		{"feesV2Usd", &result.FeesV2Usd},
		{"feeAmountGmxCurrentChain", &result.FeeAmountGmxCurrentChain},
		{"totalFeeAmountGmx", &result.TotalFeeAmountGmx},
		{"totalGmxBridgedOut", &result.TotalGmxBridgedOut},
		{"wntForKeepers", &result.WntForKeepers},
		{"wntForChainlink", &result.WntForChainlink},
		{"wntForTreasury", &result.WntForTreasury},
		{"wntForGlp", &result.WntForGlp},
		{"wntForReferralRewards", &result.WntForReferralRewards},
		{"esGmxForReferralRewards", &result.EsGmxForReferralRewards},
	}
	for _, field := range fields {
		value, err := event.Data.GetUint(field.key, zero)
		if err != nil {
			return nil, err
		}
		*field.target = value
	}
	return &result, nil
}
