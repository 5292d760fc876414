// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dougstake/dougstake/stake"
)

// fileConfig is the yaml config file. Absent keys keep the preset value.
type fileConfig struct {
	Variant       *string        `yaml:"variant"`
	APRFactor     *float64       `yaml:"apr-factor"`
	SecondsPerDay *uint64        `yaml:"seconds-per-day"`
	TokenMint     *stake.Address `yaml:"token-mint"`
	TopUp         *bool          `yaml:"top-up"`
}

func readConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrapf(err, "parse config file %v", path)
	}
	return &fc, nil
}

// configOverrides holds the config values given on the command line.
type configOverrides struct {
	Variant       *string
	APRFactor     *float64
	SecondsPerDay *uint64
	TokenMint     *stake.Address
	TopUp         *bool
}

func overridesFromFlags(ctx *cli.Context) (*configOverrides, error) {
	var o configOverrides
	if ctx.IsSet(variantFlag.Name) {
		v := ctx.String(variantFlag.Name)
		o.Variant = &v
	}
	if ctx.IsSet(aprFactorFlag.Name) {
		v := ctx.Float64(aprFactorFlag.Name)
		o.APRFactor = &v
	}
	if ctx.IsSet(secondsPerDayFlag.Name) {
		v := ctx.Uint64(secondsPerDayFlag.Name)
		o.SecondsPerDay = &v
	}
	if ctx.IsSet(tokenMintFlag.Name) {
		mint, err := stake.ParseAddress(ctx.String(tokenMintFlag.Name))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%v", tokenMintFlag.Name)
		}
		o.TokenMint = &mint
	}
	if ctx.IsSet(topUpFlag.Name) {
		v := ctx.Bool(topUpFlag.Name)
		o.TopUp = &v
	}
	return &o, nil
}

// mergeConfig builds the ledger config from the variant preset, then the file,
// then the flags. The result is validated.
func mergeConfig(fc *fileConfig, o *configOverrides) (stake.Config, error) {
	if fc == nil {
		fc = &fileConfig{}
	}
	if o == nil {
		o = &configOverrides{}
	}

	variant := "classic"
	if fc.Variant != nil {
		variant = *fc.Variant
	}
	if o.Variant != nil {
		variant = *o.Variant
	}
	mint := fc.TokenMint
	if o.TokenMint != nil {
		mint = o.TokenMint
	}

	cfg, err := stake.ConfigByVariant(variant, mint)
	if err != nil {
		return stake.Config{}, err
	}

	if fc.APRFactor != nil {
		cfg.APRFactor = *fc.APRFactor
	}
	if fc.SecondsPerDay != nil {
		cfg.SecondsPerDay = *fc.SecondsPerDay
	}
	if fc.TopUp != nil {
		cfg.TopUp = *fc.TopUp
	}

	if o.APRFactor != nil {
		cfg.APRFactor = *o.APRFactor
	}
	if o.SecondsPerDay != nil {
		cfg.SecondsPerDay = *o.SecondsPerDay
	}
	if o.TopUp != nil {
		cfg.TopUp = *o.TopUp
	}
	if mint != nil {
		m := *mint
		cfg.TokenMint = &m
	}

	if err := cfg.Validate(); err != nil {
		return stake.Config{}, errors.WithMessage(err, "config")
	}
	return cfg, nil
}

func loadConfig(ctx *cli.Context) (stake.Config, error) {
	var fc *fileConfig
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if fc, err = readConfigFile(path); err != nil {
			return stake.Config{}, err
		}
	}
	o, err := overridesFromFlags(ctx)
	if err != nil {
		return stake.Config{}, err
	}
	return mergeConfig(fc, o)
}
