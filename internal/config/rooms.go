package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// RoomsConfig is read once at startup and stays fixed for the process lifetime.
type RoomsConfig struct {
	MinThreshold decimal.Decimal
	Currency     string
}

const (
	DefaultMinThreshold = "100"
	DefaultCurrency     = "EUR"
)

func DefaultRoomsConfig() RoomsConfig {
	return RoomsConfig{
		MinThreshold: decimal.RequireFromString(DefaultMinThreshold),
		Currency:     DefaultCurrency,
	}
}

func NewRoomsConfig() (RoomsConfig, error) {
	v := viper.New()
	v.SetConfigName("rooms")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/roommanager")
	v.AddConfigPath(".")
	return readRoomsConfig(v)
}

func readRoomsConfig(v *viper.Viper) (RoomsConfig, error) {
	_ = v.BindEnv("rooms.premium.minThreshold", "PREMIUM_MIN_THRESHOLD")
	_ = v.BindEnv("rooms.currency", "ROOMS_CURRENCY")

	v.SetDefault("rooms.premium.minThreshold", DefaultMinThreshold)
	v.SetDefault("rooms.currency", DefaultCurrency)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return RoomsConfig{}, err
		}
	}

	return parseRoomsConfig(v.GetString("rooms.premium.minThreshold"), v.GetString("rooms.currency"))
}

func parseRoomsConfig(rawThreshold, rawCurrency string) (RoomsConfig, error) {
	threshold, err := decimal.NewFromString(strings.TrimSpace(rawThreshold))
	if err != nil {
		return RoomsConfig{}, fmt.Errorf("rooms.premium.minThreshold: %w", err)
	}
	if threshold.IsNegative() {
		return RoomsConfig{}, errors.New("rooms.premium.minThreshold cannot be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(rawCurrency))
	if currency == "" {
		return RoomsConfig{}, errors.New("rooms.currency cannot be empty")
	}
	return RoomsConfig{MinThreshold: threshold, Currency: currency}, nil
}
