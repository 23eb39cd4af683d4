package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// zeroHash160 is a script hash no key or contract can own.
const zeroHash160 = "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// CheckWitnessWithMessage checks witness of the passed caller.
// It panics with the given message on fail.
func CheckWitnessWithMessage(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// IsValidHash160 returns true if h can identify an account or a contract:
// it is 20 bytes long and not zero.
func IsValidHash160(h interop.Hash160) bool {
	return len(h) == interop.Hash160Len && !h.Equals(zeroHash160)
}
