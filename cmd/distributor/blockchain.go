package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/distributor-contract/rpc/distributor"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// wrapper over Neo RPC client providing services needed for the current
// command.
type remoteBlockchain struct {
	log *zap.Logger
	rpc *rpcclient.Client
	// nil for read-only commands.
	actor *actor.Actor
}

// newRemoteBlockchain dials Neo RPC server set in the global flags. If
// withSender is set, it also opens the wallet and unlocks the sender account
// to sign transactions.
func newRemoteBlockchain(c *cli.Context, withSender bool) (*remoteBlockchain, error) {
	log, err := newLogger(c)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	endpoint := c.GlobalString(rpcFlag)
	if endpoint == "" {
		return nil, errors.New("missing Neo RPC endpoint")
	}

	timeout := c.GlobalDuration(timeoutFlag)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cl, err := rpcclient.New(ctx, endpoint, rpcclient.Options{
		DialTimeout:    timeout,
		RequestTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = cl.Init()
	if err != nil {
		cl.Close()
		return nil, fmt.Errorf("init RPC client: %w", err)
	}

	b := &remoteBlockchain{
		log: log,
		rpc: cl,
	}

	if !withSender {
		return b, nil
	}

	acc, err := openAccount(c)
	if err != nil {
		cl.Close()
		return nil, err
	}

	b.actor, err = actor.NewSimple(cl, acc)
	if err != nil {
		cl.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	log.Debug("transactions will be signed by the account", zap.String("address", acc.Address))

	return b, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
	_ = x.log.Sync()
}

func (x *remoteBlockchain) reader(c *cli.Context) (*distributor.ContractReader, error) {
	h, err := contractAddress(c)
	if err != nil {
		return nil, err
	}
	return distributor.NewReader(invoker.New(x.rpc, nil), h), nil
}

func (x *remoteBlockchain) contract(c *cli.Context) (*distributor.Contract, error) {
	h, err := contractAddress(c)
	if err != nil {
		return nil, err
	}
	return distributor.New(x.actor, h), nil
}

// txWaiter is implemented by *actor.Actor.
type txWaiter interface {
	WaitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

// await waits for the transaction sent by the actor within the --timeout and
// checks that it has been executed successfully.
func (x *remoteBlockchain) await(c *cli.Context, txHash util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration(timeoutFlag))
	defer cancel()

	return awaitTx(ctx, x.log, x.actor, txHash, vub, err)
}

func awaitTx(ctx context.Context, log *zap.Logger, w txWaiter, txHash util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, fmt.Errorf("send transaction: %w", distributor.CheckFault(err))
	}

	log.Info("transaction sent, waiting for acceptance...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := w.WaitAny(ctx, vub, txHash)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash, err)
	}

	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %w", txHash, distributor.ParseFault(res.FaultException))
	}

	log.Info("transaction successfully executed", zap.Stringer("tx", txHash))

	return res, nil
}

func openAccount(c *cli.Context) (*wallet.Account, error) {
	path := c.GlobalString(walletFlag)
	if path == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var acc *wallet.Account
	if addr := c.GlobalString(addressFlag); addr != "" {
		h, err := address.StringToUint160(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid sender address: %w", err)
		}
		acc = w.GetAccount(h)
		if acc == nil {
			return nil, fmt.Errorf("account %s is missing in the wallet", addr)
		}
	} else {
		h := w.GetChangeAddress()
		acc = w.GetAccount(h)
		if acc == nil {
			return nil, errors.New("wallet has no default account")
		}
	}

	err = acc.Decrypt(c.GlobalString(passwordFlag), w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("unlock account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func contractAddress(c *cli.Context) (util.Uint160, error) {
	s := c.GlobalString(contractFlag)
	if s == "" {
		return util.Uint160{}, errors.New("missing contract address")
	}
	return parseHash(s)
}
