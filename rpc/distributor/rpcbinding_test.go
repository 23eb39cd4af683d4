package distributor

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	operation string
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.operation = operation
	return t.res, t.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: items,
	}
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetConfig()
	require.Error(t, err)
	_, err = r.GetRecord()
	require.Error(t, err)
	_, err = r.GetDepositLimit()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State:          vmstate.Fault.String(),
		FaultException: distributorconst.ErrUnauthorized,
	}
	_, err = r.GetRecord()
	require.Error(t, err)

	ti.res = halt(stackitem.Make([]stackitem.Item{}))
	_, err = r.GetConfig()
	require.ErrorContains(t, err, "wrong number of structure elements")
	_, err = r.GetRecord()
	require.ErrorContains(t, err, "wrong number of structure elements")

	ti.res = halt(stackitem.Make(42))
	_, err = r.GetConfig()
	require.Error(t, err)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make([]byte{1, 2, 3}),
		stackitem.Make(util.Uint160{2}.BytesBE()),
		stackitem.Make(util.Uint160{3}.BytesBE()),
		stackitem.Make(util.Uint160{4}.BytesBE()),
		stackitem.Make(100),
	}))
	_, err = r.GetConfig()
	require.ErrorContains(t, err, "field Controller")
}

func TestReader(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(util.Uint160{1}.BytesBE()),
		stackitem.Make(util.Uint160{2}.BytesBE()),
		stackitem.Make(util.Uint160{3}.BytesBE()),
		stackitem.Make(util.Uint160{4}.BytesBE()),
		stackitem.Make(1000),
	}))
	cfg, err := r.GetConfig()
	require.NoError(t, err)
	require.Equal(t, "getConfig", ti.operation)
	require.Equal(t, &Config{
		Controller:      util.Uint160{1},
		BurnSink:        util.Uint160{2},
		DevelopmentSink: util.Uint160{3},
		Asset:           util.Uint160{4},
		DepositAmount:   big.NewInt(1000),
	}, cfg)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(850),
		stackitem.Make(100),
		stackitem.Make(50),
	}))
	rec, err := r.GetRecord()
	require.NoError(t, err)
	require.Equal(t, "getRecord", ti.operation)
	require.Equal(t, &Record{
		BurnTotal:        big.NewInt(850),
		JackpotTotal:     big.NewInt(100),
		DevelopmentTotal: big.NewInt(50),
	}, rec)

	ti.res = halt(stackitem.Make(1000))
	limit, err := r.GetDepositLimit()
	require.NoError(t, err)
	require.Equal(t, "getDepositLimit", ti.operation)
	require.Equal(t, int64(1000), limit.Int64())

	ti.res = halt(stackitem.Make(1_000))
	v, err := r.Version()
	require.NoError(t, err)
	require.Equal(t, "version", ti.operation)
	require.Equal(t, int64(1_000), v.Int64())
}

func TestEventsFromApplicationLog(t *testing.T) {
	hash := util.Uint160{1, 2, 3}
	to := util.Uint160{7}

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			VMState: vmstate.Halt,
			Events: []state.NotificationEvent{
				{
					ScriptHash: hash,
					Name:       distributorconst.PayoutEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(distributorconst.ActionDistribute),
						stackitem.Make(to.BytesBE()),
						stackitem.Make(85),
					}),
				},
				{
					ScriptHash: hash,
					Name:       distributorconst.DepositEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(util.Uint160{9}.BytesBE()),
						stackitem.Make(100),
					}),
				},
				{
					ScriptHash: hash,
					Name:       distributorconst.DepositAmountChangedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(100),
						stackitem.Make(200),
					}),
				},
				{
					ScriptHash: hash,
					Name:       distributorconst.ControllerChangedEvent,
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(util.Uint160{1}.BytesBE()),
						stackitem.Make(util.Uint160{2}.BytesBE()),
					}),
				},
			},
		}},
	}

	payouts, err := PayoutEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*PayoutEvent{{
		Action: distributorconst.ActionDistribute,
		To:     to,
		Amount: big.NewInt(85),
	}}, payouts)

	deposits, err := DepositEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*DepositEvent{{From: util.Uint160{9}, Amount: big.NewInt(100)}}, deposits)

	amounts, err := DepositAmountChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*DepositAmountChangedEvent{{Old: big.NewInt(100), New: big.NewInt(200)}}, amounts)

	controllers, err := ControllerChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*ControllerChangedEvent{{Old: util.Uint160{1}, New: util.Uint160{2}}}, controllers)

	_, err = PayoutEventsFromApplicationLog(nil)
	require.Error(t, err)

	log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = PayoutEventsFromApplicationLog(log)
	require.ErrorContains(t, err, "wrong number of structure elements")
}

func TestParseFault(t *testing.T) {
	require.NoError(t, ParseFault(""))

	for _, known := range faultErrors {
		exception := "at instruction 42 (THROW): unhandled exception: \"" + known.Error() + "\""
		require.ErrorIs(t, ParseFault(exception), known)
		require.ErrorIs(t, CheckFault(errors.New(exception)), known)
	}

	err := ParseFault("out of gas")
	for _, known := range faultErrors {
		require.NotErrorIs(t, err, known)
	}
	require.EqualError(t, err, "out of gas")

	require.NoError(t, CheckFault(nil))
	require.ErrorIs(t, CheckFault(ErrInvalidAsset), ErrInvalidAsset)
}

type testAct struct {
	testInv

	sender util.Uint160

	contract util.Uint160
	method   string
	params   []any
	script   []byte
	signed   bool
	sent     bool
}

func (t *testAct) call(contract util.Uint160, method string, params []any) {
	t.contract, t.method, t.params = contract, method, params
}

func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	t.call(contract, method, params)
	t.signed = true
	return new(transaction.Transaction), nil
}

func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	t.script = script
	t.signed = true
	return new(transaction.Transaction), nil
}

func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, _ []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	t.call(contract, method, params)
	return new(transaction.Transaction), nil
}

func (t *testAct) MakeUnsignedRun(script []byte, _ []transaction.Attribute) (*transaction.Transaction, error) {
	t.script = script
	return new(transaction.Transaction), nil
}

func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.call(contract, method, params)
	t.signed, t.sent = true, true
	return util.Uint256{1}, 100, nil
}

func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	t.script = script
	t.signed, t.sent = true, true
	return util.Uint256{2}, 200, nil
}

func (t *testAct) Sender() util.Uint160 {
	return t.sender
}

func TestContractWriters(t *testing.T) {
	hash := util.Uint160{1, 2, 3}
	receiver := util.Uint160{7}
	amount := big.NewInt(50)

	for _, tc := range []struct {
		name   string
		method string
		params []any
		send   func(*Contract) (util.Uint256, uint32, error)
		sign   func(*Contract) (*transaction.Transaction, error)
		unsig  func(*Contract) (*transaction.Transaction, error)
	}{
		{
			name:   "withdraw",
			method: "withdraw",
			params: []any{receiver, amount},
			send:   func(c *Contract) (util.Uint256, uint32, error) { return c.Withdraw(receiver, amount) },
			sign:   func(c *Contract) (*transaction.Transaction, error) { return c.WithdrawTransaction(receiver, amount) },
			unsig:  func(c *Contract) (*transaction.Transaction, error) { return c.WithdrawUnsigned(receiver, amount) },
		},
		{
			name:   "deposit amount",
			method: "setDepositAmount",
			params: []any{amount},
			send:   func(c *Contract) (util.Uint256, uint32, error) { return c.SetDepositAmount(amount) },
			sign:   func(c *Contract) (*transaction.Transaction, error) { return c.SetDepositAmountTransaction(amount) },
			unsig:  func(c *Contract) (*transaction.Transaction, error) { return c.SetDepositAmountUnsigned(amount) },
		},
		{
			name:   "controller",
			method: "setController",
			params: []any{receiver},
			send:   func(c *Contract) (util.Uint256, uint32, error) { return c.SetController(receiver) },
			sign:   func(c *Contract) (*transaction.Transaction, error) { return c.SetControllerTransaction(receiver) },
			unsig:  func(c *Contract) (*transaction.Transaction, error) { return c.SetControllerUnsigned(receiver) },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ta := new(testAct)
			c := New(ta, hash)

			txHash, vub, err := tc.send(c)
			require.NoError(t, err)
			require.Equal(t, util.Uint256{1}, txHash)
			require.EqualValues(t, 100, vub)
			require.True(t, ta.sent)
			require.Equal(t, hash, ta.contract)
			require.Equal(t, tc.method, ta.method)
			require.Equal(t, tc.params, ta.params)

			ta = new(testAct)
			c = New(ta, hash)
			_, err = tc.sign(c)
			require.NoError(t, err)
			require.True(t, ta.signed)
			require.False(t, ta.sent)
			require.Equal(t, tc.method, ta.method)
			require.Equal(t, tc.params, ta.params)

			ta = new(testAct)
			c = New(ta, hash)
			_, err = tc.unsig(c)
			require.NoError(t, err)
			require.False(t, ta.signed)
			require.Equal(t, tc.method, ta.method)
			require.Equal(t, tc.params, ta.params)
		})
	}
}

func TestContractDeposit(t *testing.T) {
	hash := util.Uint160{1, 2, 3}
	asset := util.Uint160{4}
	sender := util.Uint160{9}

	config := halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(util.Uint160{1}.BytesBE()),
		stackitem.Make(util.Uint160{2}.BytesBE()),
		stackitem.Make(util.Uint160{3}.BytesBE()),
		stackitem.Make(asset.BytesBE()),
		stackitem.Make(1000),
	}))

	expected, err := smartcontract.CreateCallWithAssertScript(asset, "transfer", sender, hash, big.NewInt(1000), nil)
	require.NoError(t, err)

	t.Run("send", func(t *testing.T) {
		ta := &testAct{testInv: testInv{res: config}, sender: sender}

		txHash, vub, err := New(ta, hash).Deposit()
		require.NoError(t, err)
		require.Equal(t, util.Uint256{2}, txHash)
		require.EqualValues(t, 200, vub)
		require.Equal(t, "getConfig", ta.operation)
		require.True(t, ta.sent)
		require.Equal(t, expected, ta.script)
	})

	t.Run("transaction", func(t *testing.T) {
		ta := &testAct{testInv: testInv{res: config}, sender: sender}

		_, err := New(ta, hash).DepositTransaction()
		require.NoError(t, err)
		require.True(t, ta.signed)
		require.False(t, ta.sent)
		require.Equal(t, expected, ta.script)
	})

	t.Run("unsigned", func(t *testing.T) {
		ta := &testAct{testInv: testInv{res: config}, sender: sender}

		_, err := New(ta, hash).DepositUnsigned()
		require.NoError(t, err)
		require.False(t, ta.signed)
		require.Equal(t, expected, ta.script)
	})

	t.Run("config error", func(t *testing.T) {
		ta := &testAct{testInv: testInv{err: errors.New("connection refused")}, sender: sender}
		c := New(ta, hash)

		_, _, err := c.Deposit()
		require.ErrorContains(t, err, "connection refused")
		_, err = c.DepositTransaction()
		require.ErrorContains(t, err, "connection refused")
		_, err = c.DepositUnsigned()
		require.ErrorContains(t, err, "connection refused")
		require.False(t, ta.sent)
		require.Nil(t, ta.script)
	})
}
