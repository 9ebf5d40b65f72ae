package ethutil

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ChecksumAddress validates a hex address and returns its EIP-55 form. The
// 0x prefix is optional, casing is ignored.
func ChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}

	return common.HexToAddress(address).Hex(), nil
}
