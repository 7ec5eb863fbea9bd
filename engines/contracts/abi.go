package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const feeDistributorAbiJson = `[
	{"type":"function","name":"distribute","stateMutability":"nonpayable","inputs":[
		{"name":"wntReferralRewardsInUsd","type":"uint256"},
		{"name":"esGmxForReferralRewards","type":"uint256"},
		{"name":"feesV1Usd","type":"uint256"},
		{"name":"feesV2Usd","type":"uint256"}
	],"outputs":[]},
	{"type":"function","name":"depositReferralRewards","stateMutability":"nonpayable","inputs":[
		{"name":"token","type":"address"},
		{"name":"distributionId","type":"uint256"},
		{"name":"params","type":"tuple[]","components":[
			{"name":"account","type":"address"},
			{"name":"amount","type":"uint256"}
		]}
	],"outputs":[]}
]`

const dataStoreAbiJson = `[
	{"type":"function","name":"getUint","stateMutability":"view","inputs":[
		{"name":"key","type":"bytes32"}
	],"outputs":[{"name":"","type":"uint256"}]}
]`

const erc20AbiJson = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}
	],"outputs":[{"name":"","type":"uint256"}]}
]`

// eventLogDataComponent renders one of the seven typed item groups of EventUtils.EventLogData
func eventLogDataComponent(name string, valueType string) string {
	return fmt.Sprintf(`{"name":"%s","type":"tuple","components":[
		{"name":"items","type":"tuple[]","components":[{"name":"key","type":"string"},{"name":"value","type":"%s"}]},
		{"name":"arrayItems","type":"tuple[]","components":[{"name":"key","type":"string"},{"name":"value","type":"%s[]"}]}
	]}`, name, valueType, valueType)
}

func eventEmitterAbiJson() string {
	components := []string{
		eventLogDataComponent("addressItems", "address"),
		eventLogDataComponent("uintItems", "uint256"),
		eventLogDataComponent("intItems", "int256"),
		eventLogDataComponent("boolItems", "bool"),
		eventLogDataComponent("bytes32Items", "bytes32"),
		eventLogDataComponent("bytesItems", "bytes"),
		eventLogDataComponent("stringItems", "string"),
	}
	eventData := strings.Join(components, ",")
	return fmt.Sprintf(`[
		{"type":"event","name":"EventLog","anonymous":false,"inputs":[
			{"name":"msgSender","type":"address","indexed":false},
			{"name":"eventName","type":"string","indexed":false},
			{"name":"eventNameHash","type":"string","indexed":true},
			{"name":"eventData","type":"tuple","indexed":false,"components":[%s]}
		]},
		{"type":"event","name":"EventLog1","anonymous":false,"inputs":[
			{"name":"msgSender","type":"address","indexed":false},
			{"name":"eventName","type":"string","indexed":false},
			{"name":"eventNameHash","type":"string","indexed":true},
			{"name":"topic1","type":"bytes32","indexed":true},
			{"name":"eventData","type":"tuple","indexed":false,"components":[%s]}
		]}
	]`, eventData, eventData)
}

func mustParse(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid abi definition: %s", err))
	}
	return parsed
}

var (
	FeeDistributorABI = mustParse(feeDistributorAbiJson)
	DataStoreABI      = mustParse(dataStoreAbiJson)
	ERC20ABI          = mustParse(erc20AbiJson)
	EventEmitterABI   = mustParse(eventEmitterAbiJson())
)

const (
	METHOD_DISTRIBUTE               = "distribute"
	METHOD_DEPOSIT_REFERRAL_REWARDS = "depositReferralRewards"
	METHOD_GET_UINT                 = "getUint"
	METHOD_BALANCE_OF               = "balanceOf"
	EVENT_LOG                       = "EventLog"
	EVENT_LOG1                      = "EventLog1"
)
