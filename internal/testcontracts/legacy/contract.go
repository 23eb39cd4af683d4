/*
Package legacy is the previous release of the Distributor contract used in
tests to update a deployed contract to the current code. It keeps the same
manifest name and storage layout but has no deposit or withdrawal methods.
*/
package legacy

import (
	"github.com/nspcc-dev/distributor-contract/common"
	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Field order must match the current Config and Record.
type (
	config struct {
		controller      interop.Hash160
		burnSink        interop.Hash160
		developmentSink interop.Hash160
		asset           interop.Hash160
		depositAmount   int
	}

	record struct {
		burnTotal        int
		jackpotTotal     int
		developmentTotal int
	}
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		controller      interop.Hash160
		burnSink        interop.Hash160
		developmentSink interop.Hash160
		depositAmount   int
		asset           interop.Hash160
	})

	asset := args.asset
	if len(asset) == 0 {
		asset = interop.Hash160(gas.Hash)
	}

	ctx := storage.GetContext()

	common.SetSerialized(ctx, distributorconst.ConfigKey, config{
		controller:      args.controller,
		burnSink:        args.burnSink,
		developmentSink: args.developmentSink,
		asset:           asset,
		depositAmount:   args.depositAmount,
	})
	common.SetSerialized(ctx, distributorconst.RecordKey, record{})
}

// Update updates the contract to the given code. Data is extended with
// PrevVersion, the version this release reports.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	if data == nil {
		data = []any{}
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, append(data.([]any), common.PrevVersion))
}

func Version() int {
	return common.PrevVersion
}
