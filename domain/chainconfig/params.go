package chainconfig

import (
	"math"
	"math/big"

	"github.com/kaspanet/ledgercore/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// These variables are the default proof-of-work limits for each network.
var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowMax is the highest proof of work value a block can
	// have for the main network. It is the value 2^255 - 1.
	mainPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// testnetPowMax is the highest proof of work value a block can
	// have for the test network. It is the value 2^239 - 1.
	testnetPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 239), bigOne)

	// simnetPowMax is the highest proof of work value a block can
	// have for the simulation test network. It is the value 2^256 - 1,
	// which every hash satisfies.
	simnetPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 256), bigOne)

	// devnetPowMax is the highest proof of work value a block can
	// have for the development network. It is the value 2^255 - 1.
	devnetPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

const (
	defaultInitialReward   = 50
	defaultHalvingInterval = 210
)

// Params defines the economics of a ledger. A chain is bound to one Params
// value for its whole lifetime.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// InitialReward is the block subsidy, in whole coins, of the blocks
	// before the first halving.
	InitialReward uint64

	// HalvingInterval is the number of blocks after which the block subsidy
	// is cut in half. Zero disables halving.
	HalvingInterval uint64

	// PowMax defines the easiest target block builders of this network
	// are expected to use.
	PowMax *big.Int

	// GenesisTarget is the target set on genesis blocks built for this network.
	// The genesis block is never checked against its target.
	GenesisTarget *big.Int
}

// Validate returns an error if the params can't describe a working ledger
func (p *Params) Validate() error {
	if p.Name == "" {
		return errors.New("params must have a name")
	}
	if p.InitialReward > math.MaxUint64/constants.SompiPerCoin {
		return errors.Errorf("initial reward of %d coins overflows when converted to sompi", p.InitialReward)
	}
	for name, target := range map[string]*big.Int{"PowMax": p.PowMax, "GenesisTarget": p.GenesisTarget} {
		if target == nil || target.Sign() < 0 || target.BitLen() > 256 {
			return errors.Errorf("%s must be a 256-bit unsigned integer", name)
		}
	}
	return nil
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:            "mainnet",
	InitialReward:   defaultInitialReward,
	HalvingInterval: defaultHalvingInterval,
	PowMax:          mainPowMax,
	GenesisTarget:   mainPowMax,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:            "testnet",
	InitialReward:   defaultInitialReward,
	HalvingInterval: defaultHalvingInterval,
	PowMax:          testnetPowMax,
	GenesisTarget:   testnetPowMax,
}

// SimnetParams defines the network parameters for the simulation test network.
// This network is similar to the normal test network except it is
// intended for private use within a group of individuals doing simulation
// testing and every hash satisfies its proof-of-work limit.
var SimnetParams = Params{
	Name:            "simnet",
	InitialReward:   defaultInitialReward,
	HalvingInterval: 10,
	PowMax:          simnetPowMax,
	GenesisTarget:   simnetPowMax,
}

// DevnetParams defines the network parameters for the development network.
var DevnetParams = Params{
	Name:            "devnet",
	InitialReward:   defaultInitialReward,
	HalvingInterval: defaultHalvingInterval,
	PowMax:          devnetPowMax,
	GenesisTarget:   devnetPowMax,
}

// Clone returns a deep copy of the params, so overrides don't leak into
// the package-level values
func (p *Params) Clone() *Params {
	clone := *p
	if p.PowMax != nil {
		clone.PowMax = new(big.Int).Set(p.PowMax)
	}
	if p.GenesisTarget != nil {
		clone.GenesisTarget = new(big.Int).Set(p.GenesisTarget)
	}
	return &clone
}
