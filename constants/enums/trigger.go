package enums

import "github.com/ethereum/go-ethereum/common"

type ETriggerKind string

const (
	TRIGGER_DATA_RECEIVED          ETriggerKind = "FeeDistributionDataReceived"
	TRIGGER_BRIDGED_GMX_RECEIVED   ETriggerKind = "FeeDistributionBridgedGmxReceived"
	TRIGGER_DISTRIBUTION_COMPLETED ETriggerKind = "FeeDistributionCompleted"
	TRIGGER_UNKNOWN                ETriggerKind = "unknown"
)

var (
	// topic0 of EventEmitter.EventLog, the fee distribution events carry no extra topic
	EVENT_LOG_SIGNATURE = common.HexToHash("0x7e3bde2ba7aca4a8499608ca57f3b0c1c1c93ace63ffd3741a9fab204146fc9a")
	// topic0 of EventEmitter.EventLog1
	EVENT_LOG1_SIGNATURE = common.HexToHash("0x137a44067c8961cd7e1d876f4754a5a3a75989b4552f1843fc69c3b372def160")

	EVENT_LOG_SIGNATURES = []common.Hash{EVENT_LOG_SIGNATURE, EVENT_LOG1_SIGNATURE}

	// topic1 - keccak256 of the event name
	DATA_RECEIVED_EVENT_HASH          = common.HexToHash("0x55ac1650a32c2b1a50780bc0322564f8a36092ee04680ea414c44c7283bc3937")
	BRIDGED_GMX_RECEIVED_EVENT_HASH   = common.HexToHash("0x18b8c59f2f59ef65527915db9544ac15717fd3d18bc754a45263b232b1529ebe")
	DISTRIBUTION_COMPLETED_EVENT_HASH = common.HexToHash("0xb4f52781abb3fd345f04301fe57915de07b9d6292be94dce510aa8d59dd589e1")

	TRIGGER_EVENT_NAME_HASHES = []common.Hash{
		BRIDGED_GMX_RECEIVED_EVENT_HASH,
		DATA_RECEIVED_EVENT_HASH,
		DISTRIBUTION_COMPLETED_EVENT_HASH,
	}
)

func TriggerKindFromEventNameHash(hash common.Hash) ETriggerKind {
	switch hash {
	case DATA_RECEIVED_EVENT_HASH:
		return TRIGGER_DATA_RECEIVED
	case BRIDGED_GMX_RECEIVED_EVENT_HASH:
		return TRIGGER_BRIDGED_GMX_RECEIVED
	case DISTRIBUTION_COMPLETED_EVENT_HASH:
		return TRIGGER_DISTRIBUTION_COMPLETED
	default:
		return TRIGGER_UNKNOWN
	}
}
