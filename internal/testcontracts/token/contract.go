/*
Package token is a minimal NEP-17 like token used in tests. Transfers from
the account set via RejectFrom return false.
*/
package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	balancePrefix = "b"
	rejectKey     = "reject"
)

func Symbol() string {
	return "TEST"
}

func Decimals() int {
	return 8
}

func BalanceOf(account interop.Hash160) int {
	return getBalance(storage.GetReadOnlyContext(), account)
}

// Mint adds amount to the account balance without onNEP17Payment callback.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, balancePrefix+string(to), getBalance(ctx, to)+amount)
}

// RejectFrom makes all transfers from the account fail.
func RejectFrom(account interop.Hash160) {
	storage.Put(storage.GetContext(), rejectKey, account)
}

func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	rejected := storage.Get(ctx, rejectKey)
	if rejected != nil && from.Equals(rejected.([]byte)) {
		return false
	}

	if !runtime.CheckWitness(from) && !from.Equals(runtime.GetCallingScriptHash()) {
		return false
	}

	balance := getBalance(ctx, from)
	if amount < 0 || balance < amount {
		return false
	}

	storage.Put(ctx, balancePrefix+string(from), balance-amount)
	storage.Put(ctx, balancePrefix+string(to), getBalance(ctx, to)+amount)
	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

func getBalance(ctx storage.Context, account interop.Hash160) int {
	v := storage.Get(ctx, balancePrefix+string(account))
	if v == nil {
		return 0
	}
	return v.(int)
}
