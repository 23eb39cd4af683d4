// Package distributor contains RPC wrappers for Distributor contract.
package distributor

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Config is a contract-specific distributor.Config type used by its methods.
type Config struct {
	Controller      util.Uint160
	BurnSink        util.Uint160
	DevelopmentSink util.Uint160
	Asset           util.Uint160
	DepositAmount   *big.Int
}

// Record is a contract-specific distributor.Record type used by its methods.
type Record struct {
	BurnTotal        *big.Int
	JackpotTotal     *big.Int
	DevelopmentTotal *big.Int
}

// PayoutEvent represents "Payout" event emitted by the contract.
type PayoutEvent struct {
	Action string
	To     util.Uint160
	Amount *big.Int
}

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	From   util.Uint160
	Amount *big.Int
}

// DepositAmountChangedEvent represents "DepositAmountChanged" event emitted by the contract.
type DepositAmountChangedEvent struct {
	Old *big.Int
	New *big.Int
}

// ControllerChangedEvent represents "ControllerChanged" event emitted by the contract.
type ControllerChangedEvent struct {
	Old util.Uint160
	New util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
	Sender() util.Uint160
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetConfig invokes `getConfig` method of contract.
func (c *ContractReader) GetConfig() (*Config, error) {
	return itemToConfig(unwrap.Item(c.invoker.Call(c.hash, "getConfig")))
}

// GetRecord invokes `getRecord` method of contract.
func (c *ContractReader) GetRecord() (*Record, error) {
	return itemToRecord(unwrap.Item(c.invoker.Call(c.hash, "getRecord")))
}

// GetDepositLimit invokes `getDepositLimit` method of contract.
func (c *ContractReader) GetDepositLimit() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getDepositLimit"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(receiver util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", receiver, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(receiver util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", receiver, amount)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(receiver util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, receiver, amount)
}

// SetDepositAmount creates a transaction invoking `setDepositAmount` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetDepositAmount(amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDepositAmount", amount)
}

// SetDepositAmountTransaction creates a transaction invoking `setDepositAmount` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetDepositAmountTransaction(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDepositAmount", amount)
}

// SetDepositAmountUnsigned creates a transaction invoking `setDepositAmount` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetDepositAmountUnsigned(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDepositAmount", nil, amount)
}

// SetController creates a transaction invoking `setController` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetController(controller util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setController", controller)
}

// SetControllerTransaction creates a transaction invoking `setController` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetControllerTransaction(controller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setController", controller)
}

// SetControllerUnsigned creates a transaction invoking `setController` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetControllerUnsigned(controller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setController", nil, controller)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// Deposit reads the contract configuration and transfers the configured
// deposit amount of the configured asset from the actor's account to the
// contract. The transaction is signed and immediately sent to the network.
func (c *Contract) Deposit() (util.Uint256, uint32, error) {
	token, cfg, err := c.depositToken()
	if err != nil {
		return util.Uint256{}, 0, err
	}
	return token.Transfer(c.actor.Sender(), c.hash, cfg.DepositAmount, nil)
}

// DepositTransaction is like Deposit, but the signed transaction is returned
// to the caller instead of being sent.
func (c *Contract) DepositTransaction() (*transaction.Transaction, error) {
	token, cfg, err := c.depositToken()
	if err != nil {
		return nil, err
	}
	return token.TransferTransaction(c.actor.Sender(), c.hash, cfg.DepositAmount, nil)
}

// DepositUnsigned is like Deposit, but the transaction is neither signed nor
// sent.
func (c *Contract) DepositUnsigned() (*transaction.Transaction, error) {
	token, cfg, err := c.depositToken()
	if err != nil {
		return nil, err
	}
	return token.TransferUnsigned(c.actor.Sender(), c.hash, cfg.DepositAmount, nil)
}

func (c *Contract) depositToken() (*nep17.Token, *Config, error) {
	cfg, err := c.GetConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("read contract config: %w", err)
	}
	return nep17.New(c.actor, cfg.Asset), cfg, nil
}

// itemToConfig converts stack item into *Config.
func itemToConfig(item stackitem.Item, err error) (*Config, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Config)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Config from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Config) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 5)
	if err != nil {
		return err
	}

	res.Controller, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Controller: %w", err)
	}

	res.BurnSink, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field BurnSink: %w", err)
	}

	res.DevelopmentSink, err = itemToUint160(arr[2])
	if err != nil {
		return fmt.Errorf("field DevelopmentSink: %w", err)
	}

	res.Asset, err = itemToUint160(arr[3])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	res.DepositAmount, err = arr[4].TryInteger()
	if err != nil {
		return fmt.Errorf("field DepositAmount: %w", err)
	}

	return nil
}

// itemToRecord converts stack item into *Record.
func itemToRecord(item stackitem.Item, err error) (*Record, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Record)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Record from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Record) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	res.BurnTotal, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field BurnTotal: %w", err)
	}

	res.JackpotTotal, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field JackpotTotal: %w", err)
	}

	res.DevelopmentTotal, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field DevelopmentTotal: %w", err)
	}

	return nil
}

// PayoutEventsFromApplicationLog retrieves a set of all emitted events
// with "Payout" name from the provided [result.ApplicationLog].
func PayoutEventsFromApplicationLog(log *result.ApplicationLog) ([]*PayoutEvent, error) {
	return eventsFromApplicationLog(log, distributorconst.PayoutEvent, func() *PayoutEvent { return new(PayoutEvent) })
}

// FromStackItem converts provided [stackitem.Array] to PayoutEvent or
// returns an error if it's not possible to do to so.
func (e *PayoutEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	e.Action, err = itemToString(arr[0])
	if err != nil {
		return fmt.Errorf("field Action: %w", err)
	}

	e.To, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	return eventsFromApplicationLog(log, distributorconst.DepositEvent, func() *DepositEvent { return new(DepositEvent) })
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent or
// returns an error if it's not possible to do to so.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.From, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// DepositAmountChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "DepositAmountChanged" name from the provided [result.ApplicationLog].
func DepositAmountChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositAmountChangedEvent, error) {
	return eventsFromApplicationLog(log, distributorconst.DepositAmountChangedEvent, func() *DepositAmountChangedEvent { return new(DepositAmountChangedEvent) })
}

// FromStackItem converts provided [stackitem.Array] to DepositAmountChangedEvent or
// returns an error if it's not possible to do to so.
func (e *DepositAmountChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Old, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Old: %w", err)
	}

	e.New, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field New: %w", err)
	}

	return nil
}

// ControllerChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "ControllerChanged" name from the provided [result.ApplicationLog].
func ControllerChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ControllerChangedEvent, error) {
	return eventsFromApplicationLog(log, distributorconst.ControllerChangedEvent, func() *ControllerChangedEvent { return new(ControllerChangedEvent) })
}

// FromStackItem converts provided [stackitem.Array] to ControllerChangedEvent or
// returns an error if it's not possible to do to so.
func (e *ControllerChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Old, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Old: %w", err)
	}

	e.New, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field New: %w", err)
	}

	return nil
}

type stackItemEvent interface {
	FromStackItem(item *stackitem.Array) error
}

func eventsFromApplicationLog[T stackItemEvent](log *result.ApplicationLog, name string, newEvent func() T) ([]T, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []T
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			event := newEvent()
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize %sEvent from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

func structFields(item stackitem.Item, n int) ([]stackitem.Item, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	return structFields(item, n)
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}
