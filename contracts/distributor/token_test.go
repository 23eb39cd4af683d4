package distributor_test

import (
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const tokenPath = "../../internal/testcontracts/token"

// newTokenDistributor deploys test token and Distributor accepting it.
func newTokenDistributor(t *testing.T, depositAmount int64) (*testDistributor, *neotest.ContractInvoker) {
	e := newExecutor(t)

	tkn := neotest.CompileFile(t, e.CommitteeHash, tokenPath, filepath.Join(tokenPath, "config.yml"))
	e.DeployContract(t, tkn, nil)

	d := &testDistributor{
		e:           e,
		c:           compileDistributor(t, e),
		controller:  e.NewAccount(t),
		burn:        randomHash(t),
		development: randomHash(t),
	}

	e.DeployContract(t, d.c, []any{
		d.controller.ScriptHash(),
		d.burn,
		d.development,
		depositAmount,
		tkn.Hash,
	})

	return d, e.CommitteeInvoker(tkn.Hash)
}

func tokenBalance(t *testing.T, tkn *neotest.ContractInvoker, h any) int64 {
	s, err := tkn.TestInvoke(t, "balanceOf", h)
	require.NoError(t, err)

	n, err := s.Pop().Item().TryInteger()
	require.NoError(t, err)

	return n.Int64()
}

func TestTokenAsset(t *testing.T) {
	d, tkn := newTokenDistributor(t, 100)

	user := d.e.NewAccount(t)
	tkn.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000))

	userTkn := tkn.WithSigners(user)

	userTkn.InvokeFail(t, distributorconst.ErrInvalidAmount,
		"transfer", user.ScriptHash(), d.c.Hash, int64(99), nil)

	userTkn.Invoke(t, true, "transfer", user.ScriptHash(), d.c.Hash, int64(100), nil)

	require.Equal(t, [3]int64{85, 10, 5}, d.record(t))
	require.EqualValues(t, 900, tokenBalance(t, tkn, user.ScriptHash()))
	require.EqualValues(t, 85, tokenBalance(t, tkn, d.burn))
	require.EqualValues(t, 5, tokenBalance(t, tkn, d.development))
	require.EqualValues(t, 10, tokenBalance(t, tkn, d.c.Hash))

	receiver := randomHash(t)
	d.controllerInvoker().Invoke(t, stackitem.Null{}, "withdraw", receiver, int64(10))
	require.EqualValues(t, 10, tokenBalance(t, tkn, receiver))
	require.Zero(t, tokenBalance(t, tkn, d.c.Hash))
}

func TestTransferFailed(t *testing.T) {
	d, tkn := newTokenDistributor(t, 100)

	user := d.e.NewAccount(t)
	tkn.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), int64(1000))

	userTkn := tkn.WithSigners(user)
	userTkn.Invoke(t, true, "transfer", user.ScriptHash(), d.c.Hash, int64(100), nil)

	tkn.Invoke(t, stackitem.Null{}, "rejectFrom", d.c.Hash)

	t.Run("deposit", func(t *testing.T) {
		userTkn.InvokeFail(t, distributorconst.ErrTransferFailed,
			"transfer", user.ScriptHash(), d.c.Hash, int64(100), nil)

		require.Equal(t, [3]int64{85, 10, 5}, d.record(t))
		require.EqualValues(t, 900, tokenBalance(t, tkn, user.ScriptHash()))
	})

	t.Run("withdraw", func(t *testing.T) {
		d.controllerInvoker().InvokeFail(t, distributorconst.ErrTransferFailed,
			"withdraw", randomHash(t), int64(10))

		require.Equal(t, [3]int64{85, 10, 5}, d.record(t))
		require.EqualValues(t, 10, tokenBalance(t, tkn, d.c.Hash))
	})
}
