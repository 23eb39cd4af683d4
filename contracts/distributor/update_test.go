package distributor_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/distributor-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const legacyPath = "../../internal/testcontracts/legacy"

func TestUpdate_FromPreviousVersion(t *testing.T) {
	e := newExecutor(t)

	d := &testDistributor{
		e:           e,
		c:           neotest.CompileFile(t, e.CommitteeHash, legacyPath, filepath.Join(legacyPath, "config.yml")),
		controller:  e.NewAccount(t),
		burn:        randomHash(t),
		development: randomHash(t),
	}

	var err error
	d.gas, err = e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	e.DeployContract(t, d.c, []any{
		d.controller.ScriptHash(),
		d.burn,
		d.development,
		int64(1000),
		nil,
	})
	d.invoker().Invoke(t, common.PrevVersion, "version")

	next := compileDistributor(t, e)

	bNEF, err := next.NEF.Bytes()
	require.NoError(t, err)

	jManifest, err := json.Marshal(next.Manifest)
	require.NoError(t, err)

	d.invoker(d.controller).InvokeFail(t, "only committee can update contract",
		"update", bNEF, jManifest, nil)

	d.invoker().Invoke(t, stackitem.Null{}, "update", bNEF, jManifest, nil)
	d.invoker().Invoke(t, common.Version, "version")

	controller, burn, development, asset, amount := d.config(t)
	require.Equal(t, d.controller.ScriptHash(), controller)
	require.Equal(t, d.burn, burn)
	require.Equal(t, d.development, development)
	require.Equal(t, d.gas, asset)
	require.EqualValues(t, 1000, amount)
	require.Equal(t, [3]int64{0, 0, 0}, d.record(t))

	d.deposit(t, 1000)
	require.Equal(t, [3]int64{850, 100, 50}, d.record(t))
	require.EqualValues(t, 850, d.gasBalance(d.burn))
	require.EqualValues(t, 50, d.gasBalance(d.development))

	receiver := randomHash(t)
	d.controllerInvoker().Invoke(t, stackitem.Null{}, "withdraw", receiver, int64(100))
	require.EqualValues(t, 100, d.gasBalance(receiver))
	require.Equal(t, [3]int64{850, 0, 50}, d.record(t))

	d.invoker().InvokeFail(t, common.ErrAlreadyUpdated,
		"update", bNEF, jManifest, nil)
}
