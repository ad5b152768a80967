// Package config loads marketplace and ledger settings through viper so
// deployments can override the fallbacks via a config file or environment.
package config

import (
	"github.com/spf13/viper"

	"estateshares/sdk"
)

// Fallback values, used whenever a deployment provides nothing else.
const (
	FallbackSharesPerProperty = 1000
	FallbackMarketFee         = 0.01
	FallbackDealWindowHours   = 24 * 7
	FallbackPaymentAsset      = "credit"
)

// Settings is the resolved configuration handed to the ledger and market.
type Settings struct {
	SharesPerProperty int64
	MarketFee         sdk.Amount
	DealWindowHours   int64
	PaymentAsset      sdk.Asset
}

// Init sets up our viper config object with defaults and env overrides, then
// reads whatever config file the caller pointed viper at (SetConfigFile or
// AddConfigPath/SetConfigName). A missing file is not an error; a present but
// unreadable one is.
func Init(config *viper.Viper) error {
	config.SetDefault("sharesPerProperty", FallbackSharesPerProperty)
	config.SetDefault("marketFee", FallbackMarketFee)
	config.SetDefault("dealWindowHours", FallbackDealWindowHours)
	config.SetDefault("paymentAsset", FallbackPaymentAsset)
	config.SetEnvPrefix("estateshares")
	config.AutomaticEnv()
	if err := config.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Load resolves Settings out of an initialized viper instance.
func Load(config *viper.Viper) Settings {
	return Settings{
		SharesPerProperty: config.GetInt64("sharesPerProperty"),
		MarketFee:         sdk.FloatToAmount(config.GetFloat64("marketFee")),
		DealWindowHours:   config.GetInt64("dealWindowHours"),
		PaymentAsset:      sdk.AssetFromString(config.GetString("paymentAsset")),
	}
}

// Default returns Settings built purely from the fallbacks. A fresh viper
// has no config file pointed at it, so Init cannot fail here.
func Default() Settings {
	v := viper.New()
	_ = Init(v)
	return Load(v)
}
