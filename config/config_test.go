package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateshares/config"
	"estateshares/sdk"
)

func TestDefaults(t *testing.T) {
	settings := config.Default()
	assert.Equal(t, int64(1000), settings.SharesPerProperty)
	assert.Equal(t, sdk.FloatToAmount(0.01), settings.MarketFee)
	assert.Equal(t, int64(168), settings.DealWindowHours)
	assert.Equal(t, sdk.AssetCredit, settings.PaymentAsset)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ESTATESHARES_MARKETFEE", "0.5")
	t.Setenv("ESTATESHARES_DEALWINDOWHOURS", "48")

	v := viper.New()
	require.NoError(t, config.Init(v))
	settings := config.Load(v)
	assert.Equal(t, sdk.FloatToAmount(0.5), settings.MarketFee)
	assert.Equal(t, int64(48), settings.DealWindowHours)
	assert.Equal(t, int64(1000), settings.SharesPerProperty, "untouched keys keep their fallback")
}

func TestConfigFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "estateshares.yaml")
	require.NoError(t, os.WriteFile(file, []byte("marketFee: 0.25\ndealWindowHours: 72\n"), 0o644))

	// name+path discovery, not an explicit SetConfigFile
	v := viper.New()
	v.SetConfigName("estateshares")
	v.AddConfigPath(dir)
	require.NoError(t, config.Init(v))

	settings := config.Load(v)
	assert.Equal(t, sdk.FloatToAmount(0.25), settings.MarketFee)
	assert.Equal(t, int64(72), settings.DealWindowHours)
	assert.Equal(t, int64(1000), settings.SharesPerProperty)
}

func TestMissingConfigFileIsFine(t *testing.T) {
	v := viper.New()
	v.SetConfigName("estateshares")
	v.AddConfigPath(t.TempDir())
	require.NoError(t, config.Init(v))
	assert.Equal(t, config.Default(), config.Load(v))
}
