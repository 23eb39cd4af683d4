package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// parseHash accepts Neo address or script hash in LE hex, with or without 0x
// prefix.
func parseHash(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	h, err = util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return h, fmt.Errorf("'%s' is neither an address nor a script hash", s)
	}

	return h, nil
}

// parseAmount parses non-negative integer amount in the smallest token
// units.
func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount '%s'", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount '%s'", s)
	}
	return v, nil
}
