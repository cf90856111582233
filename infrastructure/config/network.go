package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Simnet             bool   `long:"simnet" description:"Use the simulation test network"`
	Devnet             bool   `long:"devnet" description:"Use the development test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides the chain params (allowed only on devnet)"`

	ActiveNetParams *chainconfig.Params
}

type overrideParamsConfig struct {
	InitialReward   *uint64 `json:"initialReward"`
	HalvingInterval *uint64 `json:"halvingInterval"`
	PowMax          *string `json:"powMax"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// Default net is main net
	networkFlags.ActiveNetParams = chainconfig.MainnetParams.Clone()

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = chainconfig.TestnetParams.Clone()
	}
	if networkFlags.Simnet {
		numNets++
		networkFlags.ActiveNetParams = chainconfig.SimnetParams.Clone()
	}
	if networkFlags.Devnet {
		numNets++
		networkFlags.ActiveNetParams = chainconfig.DevnetParams.Clone()
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, simnet, devnet, etc.) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	err := networkFlags.overrideParams()
	if err != nil {
		return err
	}

	return networkFlags.ActiveNetParams.Validate()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chainconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	if !networkFlags.Devnet {
		return errors.Errorf("override-params-file is allowed only when using devnet")
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse %s", networkFlags.OverrideParamsFile)
	}

	if config.InitialReward != nil {
		networkFlags.ActiveNetParams.InitialReward = *config.InitialReward
	}

	if config.HalvingInterval != nil {
		networkFlags.ActiveNetParams.HalvingInterval = *config.HalvingInterval
	}

	if config.PowMax != nil {
		powMax, ok := big.NewInt(0).SetString(*config.PowMax, 16)
		if !ok {
			return errors.Errorf("couldn't convert %s to big int", *config.PowMax)
		}
		networkFlags.ActiveNetParams.PowMax = powMax
	}

	return nil
}
