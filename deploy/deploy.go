/*
Package deploy provides deployment of the Distributor contract to a Neo
network.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// GetContractStateByHash returns network state of the smart contract by its
	// address. It returns error with 'Unknown contract' substring if requested
	// contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Actor composes, signs and sends deployment transaction on behalf of the
// deployer account. *actor.Actor satisfies it.
type Actor interface {
	management.Actor

	// Sender returns the deployer account. Contract address depends on it.
	Sender() util.Uint160

	// WaitAny waits until one of the transactions is accepted to the chain,
	// becomes invalid or the context is done.
	WaitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

// Prm groups all parameters of the Distributor contract deployment.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	Blockchain Blockchain
	Actor      Actor

	// Compiled contract, see ReadContract.
	Contract Contract

	// Initial contract configuration. Zero Asset makes the contract accept
	// GAS.
	Controller      util.Uint160
	BurnSink        util.Uint160
	DevelopmentSink util.Uint160
	Asset           util.Uint160
	DepositAmount   *big.Int
}

// Deploy deploys the Distributor contract with the given initial
// configuration and returns its address. If the contract with the same name
// and script has already been deployed by the same account, Deploy does
// nothing and returns its address.
//
// Deploy aborts by context or when the deployment transaction fails.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	var addr util.Uint160

	err := prm.validate()
	if err != nil {
		return addr, fmt.Errorf("invalid parameters: %w", err)
	}

	addr = state.CreateContractHash(prm.Actor.Sender(), prm.Contract.NEF.Checksum, prm.Contract.Manifest.Name)
	log := prm.Logger.With(zap.String("contract", prm.Contract.Manifest.Name), zap.Stringer("address", addr))

	deployed, err := isDeployed(prm.Blockchain, addr)
	if err != nil {
		return addr, err
	}
	if deployed {
		log.Info("contract is already deployed, skip")
		return addr, nil
	}

	log.Info("deploying contract...",
		zap.Stringer("controller", prm.Controller),
		zap.Stringer("burn sink", prm.BurnSink),
		zap.Stringer("development sink", prm.DevelopmentSink),
		zap.Stringer("deposit amount", prm.DepositAmount))

	txHash, vub, err := management.New(prm.Actor).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, prm.deployData())
	if err != nil {
		return addr, fmt.Errorf("send deployment transaction: %w", err)
	}

	log.Debug("deployment transaction sent, waiting for acceptance...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := prm.Actor.WaitAny(ctx, vub, txHash)
	if err != nil {
		return addr, fmt.Errorf("wait for deployment transaction %s: %w", txHash, err)
	}

	if res.VMState != vmstate.Halt {
		return addr, fmt.Errorf("deployment transaction %s failed: %s", txHash, res.FaultException)
	}

	log.Info("contract successfully deployed", zap.Stringer("tx", txHash))

	return addr, nil
}

func (prm Prm) validate() error {
	switch {
	case prm.Logger == nil:
		return errors.New("missing logger")
	case prm.Blockchain == nil:
		return errors.New("missing blockchain")
	case prm.Actor == nil:
		return errors.New("missing actor")
	case prm.Controller.Equals(util.Uint160{}):
		return errors.New("missing controller")
	case prm.BurnSink.Equals(util.Uint160{}):
		return errors.New("missing burn sink")
	case prm.DevelopmentSink.Equals(util.Uint160{}):
		return errors.New("missing development sink")
	case prm.DepositAmount == nil:
		return errors.New("missing deposit amount")
	case prm.DepositAmount.Sign() < 0:
		return errors.New("negative deposit amount")
	}
	return nil
}

// deployData returns data for _deploy method of the contract.
func (prm Prm) deployData() []any {
	var asset any
	if !prm.Asset.Equals(util.Uint160{}) {
		asset = prm.Asset
	}

	return []any{
		prm.Controller,
		prm.BurnSink,
		prm.DevelopmentSink,
		prm.DepositAmount,
		asset,
	}
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}
	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}
	return false, fmt.Errorf("get contract state by address %s: %w", addr, err)
}
