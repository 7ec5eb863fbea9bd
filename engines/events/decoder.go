package events

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/engines/contracts"
)

// Decoder turns EventEmitter EventLog and EventLog1 logs into DecodedEvent. When emitter
// is not the zero address, logs from other contracts are rejected.
type Decoder struct {
	emitter ethcommon.Address
	events  map[ethcommon.Hash]abi.Event
}

func NewDecoder(emitter ethcommon.Address) *Decoder {
	return &Decoder{
		emitter: emitter,
		events: map[ethcommon.Hash]abi.Event{
			enums.EVENT_LOG_SIGNATURE:  contracts.EventEmitterABI.Events[contracts.EVENT_LOG],
			enums.EVENT_LOG1_SIGNATURE: contracts.EventEmitterABI.Events[contracts.EVENT_LOG1],
		},
	}
}

func (decoder *Decoder) GetId() string {
	return "EventEmitterDecoder"
}

func (decoder *Decoder) IsTriggerLog(log *types.Log) bool {
	if log == nil || len(log.Topics) < 2 {
		return false
	}
	_, ok := decoder.events[log.Topics[0]]
	return ok
}

func (decoder *Decoder) Decode(log *types.Log) (*common.DecodedEvent, error) {
	if log == nil {
		return nil, errors.Join(constants.ErrEventDecodeFailed, errors.New("log is nil"))
	}
	if !decoder.IsTriggerLog(log) {
		return nil, errors.Join(constants.ErrEventDecodeFailed, fmt.Errorf("log %s:%d is not an EventEmitter log", log.TxHash, log.Index))
	}
	if decoder.emitter != (ethcommon.Address{}) && log.Address != decoder.emitter {
		return nil, errors.Join(constants.ErrEventDecodeFailed, fmt.Errorf("log emitted by %s, expected %s", log.Address, decoder.emitter))
	}

	event := decoder.events[log.Topics[0]]
	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return nil, errors.Join(constants.ErrEventDecodeFailed, err)
	}
	if len(values) != 3 {
		return nil, errors.Join(constants.ErrEventDecodeFailed, fmt.Errorf("expected 3 values, got %d", len(values)))
	}
	msgSender, _ := values[0].(ethcommon.Address)
	eventName, _ := values[1].(string)
	raw := *abi.ConvertType(values[2], new(EventLogData)).(*EventLogData)

	eventNameHash := log.Topics[1]
	if eventName != "" && crypto.Keccak256Hash([]byte(eventName)) != eventNameHash {
		return nil, errors.Join(constants.ErrEventDecodeFailed, fmt.Errorf("event name '%s' does not match topic %s", eventName, eventNameHash))
	}

	return &common.DecodedEvent{
		EventNameHash: eventNameHash,
		EventName:     eventName,
		MsgSender:     msgSender,
		BlockNumber:   log.BlockNumber,
		TxHash:        log.TxHash,
		Data:          ToKeyValueEventData(&raw),
	}, nil
}

func ToKeyValueEventData(raw *EventLogData) *common.KeyValueEventData {
	data := common.NewKeyValueEventData()
	for _, item := range raw.AddressItems.Items {
		data.AddressItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.AddressItems.ArrayItems {
		data.AddressItems.ArrayItems[item.Key] = item.Value
	}
	for _, item := range raw.UintItems.Items {
		data.UintItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.UintItems.ArrayItems {
		data.UintItems.ArrayItems[item.Key] = item.Value
	}
	for _, item := range raw.IntItems.Items {
		data.IntItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.IntItems.ArrayItems {
		data.IntItems.ArrayItems[item.Key] = item.Value
	}
	for _, item := range raw.BoolItems.Items {
		data.BoolItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.BoolItems.ArrayItems {
		data.BoolItems.ArrayItems[item.Key] = item.Value
	}
	for _, item := range raw.Bytes32Items.Items {
		data.Bytes32Items.Items[item.Key] = ethcommon.Hash(item.Value)
	}
	for _, item := range raw.Bytes32Items.ArrayItems {
		hashes := make([]ethcommon.Hash, len(item.Value))
		for i, value := range item.Value {
			hashes[i] = ethcommon.Hash(value)
		}
		data.Bytes32Items.ArrayItems[item.Key] = hashes
	}
	for _, item := range raw.BytesItems.Items {
		data.BytesItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.BytesItems.ArrayItems {
		data.BytesItems.ArrayItems[item.Key] = item.Value
	}
	for _, item := range raw.StringItems.Items {
		data.StringItems.Items[item.Key] = item.Value
	}
	for _, item := range raw.StringItems.ArrayItems {
		data.StringItems.ArrayItems[item.Key] = item.Value
	}
	return data
}

// EncodeLog builds an EventLog log, with topic1 given an EventLog1 log.
// Used by `refpay trigger --simulate` and tests.
func EncodeLog(emitter ethcommon.Address, msgSender ethcommon.Address, eventName string, data EventLogData, topic1 ...ethcommon.Hash) (*types.Log, error) {
	abiEvent, signature := contracts.EVENT_LOG, enums.EVENT_LOG_SIGNATURE
	if len(topic1) > 0 {
		abiEvent, signature = contracts.EVENT_LOG1, enums.EVENT_LOG1_SIGNATURE
	}
	event := contracts.EventEmitterABI.Events[abiEvent]
	packed, err := event.Inputs.NonIndexed().Pack(msgSender, eventName, data)
	if err != nil {
		return nil, errors.Join(constants.ErrCallEncodingFailed, err)
	}
	topics := []ethcommon.Hash{signature, crypto.Keccak256Hash([]byte(eventName))}
	topics = append(topics, topic1...)
	return &types.Log{
		Address: emitter,
		Topics:  topics,
		Data:    packed,
	}, nil
}
