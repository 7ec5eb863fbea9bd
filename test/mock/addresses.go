package mock

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func GetRandomAddress() common.Address {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return crypto.PubkeyToAddress(key.PublicKey)
}

// Account returns a deterministic lowercase account, as the subgraph reports them
func Account(n int) string {
	return fmt.Sprintf("0x%040x", n)
}
