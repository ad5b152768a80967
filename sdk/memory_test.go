package sdk_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateshares/sdk"
)

func TestMemoryStateSnapshot(t *testing.T) {
	st := sdk.NewMemoryState()
	st.Set("a", "1")
	st.Set("b", "2")
	st.Delete("a")

	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, st.SaveToFile(file))

	restored := sdk.NewMemoryState()
	require.NoError(t, restored.LoadFromFile(file))
	assert.Equal(t, 1, restored.Len())
	require.NotNil(t, restored.Get("b"))
	assert.Equal(t, "2", *restored.Get("b"))
	assert.Nil(t, restored.Get("a"))
}

func TestMemoryStateLoadMissingFile(t *testing.T) {
	st := sdk.NewMemoryState()
	require.NoError(t, st.LoadFromFile(filepath.Join(t.TempDir(), "absent.json")))
	assert.Equal(t, 0, st.Len())
}

func TestMemoryBankDrawAndTransfer(t *testing.T) {
	holding := sdk.AddressFromString("contract:escrow")
	bank := sdk.NewMemoryBank(holding)
	payer := sdk.AddressFromString("user:payer")
	payee := sdk.AddressFromString("user:payee")

	bank.Deposit(payer, sdk.FloatToAmount(10), sdk.AssetCredit)

	require.NoError(t, bank.Draw(payer, sdk.FloatToAmount(4), sdk.AssetCredit))
	assert.Equal(t, sdk.FloatToAmount(6), bank.Balance(payer, sdk.AssetCredit))
	assert.Equal(t, sdk.FloatToAmount(4), bank.Balance(holding, sdk.AssetCredit))

	require.NoError(t, bank.Transfer(payee, sdk.FloatToAmount(3), sdk.AssetCredit))
	assert.Equal(t, sdk.FloatToAmount(3), bank.Balance(payee, sdk.AssetCredit))
	assert.Equal(t, sdk.FloatToAmount(1), bank.Balance(holding, sdk.AssetCredit))

	assert.Error(t, bank.Draw(payer, sdk.FloatToAmount(100), sdk.AssetCredit), "overdraw refused")
	assert.Error(t, bank.Transfer(payee, sdk.FloatToAmount(100), sdk.AssetCredit), "holding cannot overpay")
	assert.Error(t, bank.Draw(payer, 0, sdk.AssetCredit))
	assert.Equal(t, sdk.FloatToAmount(6), bank.Balance(payer, sdk.AssetCredit), "failed moves change nothing")
}
