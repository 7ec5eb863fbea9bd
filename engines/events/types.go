package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Go mirrors of EventUtils.EventLogData. Field names follow the abi component names
// so abi.ConvertType can fill them.

type AddressKeyValue struct {
	Key   string
	Value common.Address
}

type AddressArrayKeyValue struct {
	Key   string
	Value []common.Address
}

type AddressItems struct {
	Items      []AddressKeyValue
	ArrayItems []AddressArrayKeyValue
}

type UintKeyValue struct {
	Key   string
	Value *big.Int
}

type UintArrayKeyValue struct {
	Key   string
	Value []*big.Int
}

type UintItems struct {
	Items      []UintKeyValue
	ArrayItems []UintArrayKeyValue
}

type IntItems struct {
	Items      []UintKeyValue
	ArrayItems []UintArrayKeyValue
}

type BoolKeyValue struct {
	Key   string
	Value bool
}

type BoolArrayKeyValue struct {
	Key   string
	Value []bool
}

type BoolItems struct {
	Items      []BoolKeyValue
	ArrayItems []BoolArrayKeyValue
}

type Bytes32KeyValue struct {
	Key   string
	Value [32]byte
}

type Bytes32ArrayKeyValue struct {
	Key   string
	Value [][32]byte
}

type Bytes32Items struct {
	Items      []Bytes32KeyValue
	ArrayItems []Bytes32ArrayKeyValue
}

type BytesKeyValue struct {
	Key   string
	Value []byte
}

type BytesArrayKeyValue struct {
	Key   string
	Value [][]byte
}

type BytesItems struct {
	Items      []BytesKeyValue
	ArrayItems []BytesArrayKeyValue
}

type StringKeyValue struct {
	Key   string
	Value string
}

type StringArrayKeyValue struct {
	Key   string
	Value []string
}

type StringItems struct {
	Items      []StringKeyValue
	ArrayItems []StringArrayKeyValue
}

type EventLogData struct {
	AddressItems AddressItems
	UintItems    UintItems
	IntItems     IntItems
	BoolItems    BoolItems
	Bytes32Items Bytes32Items
	BytesItems   BytesItems
	StringItems  StringItems
}

func NewEventLogData() EventLogData {
	return EventLogData{
		AddressItems: AddressItems{Items: []AddressKeyValue{}, ArrayItems: []AddressArrayKeyValue{}},
		UintItems:    UintItems{Items: []UintKeyValue{}, ArrayItems: []UintArrayKeyValue{}},
		IntItems:     IntItems{Items: []UintKeyValue{}, ArrayItems: []UintArrayKeyValue{}},
		BoolItems:    BoolItems{Items: []BoolKeyValue{}, ArrayItems: []BoolArrayKeyValue{}},
		Bytes32Items: Bytes32Items{Items: []Bytes32KeyValue{}, ArrayItems: []Bytes32ArrayKeyValue{}},
		BytesItems:   BytesItems{Items: []BytesKeyValue{}, ArrayItems: []BytesArrayKeyValue{}},
		StringItems:  StringItems{Items: []StringKeyValue{}, ArrayItems: []StringArrayKeyValue{}},
	}
}
