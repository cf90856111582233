package testutils

import (
	"testing"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
)

// ForAllNets runs the passed testFunc with all available networks.
// Every run gets its own copy of the params.
func ForAllNets(t *testing.T, testFunc func(*testing.T, *chainconfig.Params)) {
	allParams := []chainconfig.Params{
		chainconfig.MainnetParams,
		chainconfig.TestnetParams,
		chainconfig.SimnetParams,
		chainconfig.DevnetParams,
	}

	for _, params := range allParams {
		params := params.Clone()
		t.Run(params.Name, func(t *testing.T) {
			t.Parallel()
			t.Logf("Running test for %s", params.Name)
			testFunc(t, params)
		})
	}
}
