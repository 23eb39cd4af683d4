package distributor

import (
	"github.com/nspcc-dev/distributor-contract/common"
	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Config is the contract configuration set at deployment and changed
	// by the controller.
	Config struct {
		// Account allowed to withdraw the jackpot and reconfigure the contract.
		Controller interop.Hash160
		// Receiver of the burn share of every deposit.
		BurnSink interop.Hash160
		// Receiver of the development share of every deposit.
		DevelopmentSink interop.Hash160
		// NEP-17 token deposits are accepted and withdrawals are paid in.
		Asset interop.Hash160
		// Exact amount of a single deposit.
		DepositAmount int
	}

	// Record contains amounts accumulated in every bucket over the contract
	// lifetime. JackpotTotal is decreased by withdrawals, other totals only
	// grow.
	Record struct {
		BurnTotal        int
		JackpotTotal     int
		DevelopmentTotal int
	}
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		controller      interop.Hash160
		burnSink        interop.Hash160
		developmentSink interop.Hash160
		depositAmount   int
		asset           interop.Hash160
	})

	checkIdentity(args.controller)
	checkIdentity(args.burnSink)
	checkIdentity(args.developmentSink)
	checkAmount(args.depositAmount)

	asset := args.asset
	if len(asset) == 0 {
		asset = interop.Hash160(gas.Hash)
	} else {
		checkIdentity(asset)
	}

	ctx := storage.GetContext()

	common.SetSerialized(ctx, distributorconst.ConfigKey, Config{
		Controller:      args.controller,
		BurnSink:        args.burnSink,
		DevelopmentSink: args.developmentSink,
		Asset:           asset,
		DepositAmount:   args.depositAmount,
	})
	common.SetSerialized(ctx, distributorconst.RecordKey, Record{})

	runtime.Log("distributor contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("distributor contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible asset contract. It is
// the deposit entry point: the payment must be made in the configured asset
// and must be exactly the configured deposit amount.
//
// The payment is split into burn, jackpot and development shares. Burn and
// development shares are transferred to the corresponding sinks right away,
// the jackpot share stays on the contract account until withdrawn.
//
// It produces two Payout notifications and Deposit notification.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	// minted tokens (e.g. GAS emitted for NEO holders) are not deposits
	if len(from) == 0 {
		return
	}

	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(cfg.Asset) {
		panic(distributorconst.ErrInvalidAsset)
	}

	if amount != cfg.DepositAmount {
		panic(distributorconst.ErrInvalidAmount)
	}

	burn := share(amount, distributorconst.BurnPercent)
	jackpot := share(amount, distributorconst.JackpotPercent)
	development := share(amount, distributorconst.DevelopmentPercent)

	rec := getRecord(ctx)
	rec.BurnTotal += burn
	rec.JackpotTotal += jackpot
	rec.DevelopmentTotal += development
	common.SetSerialized(ctx, distributorconst.RecordKey, rec)

	payout(cfg.Asset, cfg.BurnSink, burn, distributorconst.ActionDistribute)
	payout(cfg.Asset, cfg.DevelopmentSink, development, distributorconst.ActionDistribute)

	runtime.Notify(distributorconst.DepositEvent, from, amount)
}

// Withdraw transfers amount of the configured asset from the jackpot to the
// receiver. It can be invoked only by the controller.
//
// It produces Payout notification.
func Withdraw(receiver interop.Hash160, amount int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkController(cfg)
	checkIdentity(receiver)
	if receiver.Equals(runtime.GetExecutingScriptHash()) {
		panic(distributorconst.ErrInvalidIdentity)
	}
	checkAmount(amount)

	rec := getRecord(ctx)
	if amount > rec.JackpotTotal {
		panic(distributorconst.ErrInsufficientBalance)
	}

	rec.JackpotTotal -= amount
	common.SetSerialized(ctx, distributorconst.RecordKey, rec)

	payout(cfg.Asset, receiver, amount, distributorconst.ActionWithdraw)
}

// SetDepositAmount changes the exact amount of a single deposit. It can be
// invoked only by the controller.
//
// It produces DepositAmountChanged notification.
func SetDepositAmount(amount int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkController(cfg)
	checkAmount(amount)

	old := cfg.DepositAmount
	cfg.DepositAmount = amount
	common.SetSerialized(ctx, distributorconst.ConfigKey, cfg)

	runtime.Notify(distributorconst.DepositAmountChangedEvent, old, amount)
}

// SetController passes control over the contract to another account. It can
// be invoked only by the current controller.
//
// It produces ControllerChanged notification.
func SetController(controller interop.Hash160) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkController(cfg)
	checkIdentity(controller)

	old := cfg.Controller
	cfg.Controller = controller
	common.SetSerialized(ctx, distributorconst.ConfigKey, cfg)

	runtime.Notify(distributorconst.ControllerChangedEvent, old, controller)
}

// GetConfig returns current contract configuration.
func GetConfig() Config {
	return getConfig(storage.GetReadOnlyContext())
}

// GetRecord returns amounts accumulated in the buckets.
func GetRecord() Record {
	return getRecord(storage.GetReadOnlyContext())
}

// GetDepositLimit returns the exact amount of a single deposit.
func GetDepositLimit() int {
	return getConfig(storage.GetReadOnlyContext()).DepositAmount
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getConfig(ctx storage.Context) Config {
	data := storage.Get(ctx, distributorconst.ConfigKey)
	return std.Deserialize(data.([]byte)).(Config)
}

func getRecord(ctx storage.Context) Record {
	data := storage.Get(ctx, distributorconst.RecordKey)
	return std.Deserialize(data.([]byte)).(Record)
}

func checkController(cfg Config) {
	common.CheckWitnessWithMessage(cfg.Controller, distributorconst.ErrUnauthorized)
}

func checkIdentity(h interop.Hash160) {
	if !common.IsValidHash160(h) {
		panic(distributorconst.ErrInvalidIdentity)
	}
}

func checkAmount(amount int) {
	if amount < 0 {
		panic(distributorconst.ErrInvalidAmount)
	}
}

// share returns percent of amount rounded down.
func share(amount, percent int) int {
	return amount * percent / distributorconst.PercentBase
}

func payout(asset, to interop.Hash160, amount int, action string) {
	from := runtime.GetExecutingScriptHash()

	transferred := contract.Call(asset, "transfer", contract.All, from, to, amount, nil).(bool)
	if !transferred {
		panic(distributorconst.ErrTransferFailed)
	}

	runtime.Notify(distributorconst.PayoutEvent, action, to, amount)
}
