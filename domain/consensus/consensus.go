package consensus

import (
	"sync"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus/model"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/ledgercore/domain/consensus/processes/coinbasemanager"
	"github.com/kaspanet/ledgercore/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/utxo"
	"github.com/kaspanet/ledgercore/infrastructure/logger"
	"github.com/pkg/errors"
)

// Consensus is a single linear chain of blocks along with its unspent
// transaction outputs. It only ever grows by appending validated blocks.
//
// Consensus is safe for concurrent use: appends are serialized, and queries
// observe the chain either before or after an append, never in between.
type Consensus struct {
	lock sync.RWMutex

	params         *chainconfig.Params
	blockValidator model.BlockValidator
	blockStore     model.BlockStore

	blocks  []*externalapi.DomainBlock
	utxoSet *utxo.Collection
}

// New returns an empty chain following params. If blockStore is not nil,
// every accepted block is written to it before being applied.
func New(params *chainconfig.Params, blockStore model.BlockStore) (*Consensus, error) {
	err := params.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s params", params.Name)
	}

	coinbaseManager := coinbasemanager.New(params)
	transactionValidator := transactionvalidator.New(coinbaseManager)

	return &Consensus{
		params:         params,
		blockValidator: blockvalidator.New(transactionValidator),
		blockStore:     blockStore,
		utxoSet:        utxo.NewCollection(),
	}, nil
}

// AddBlock validates block against the current tip and unspent set and, if it
// is valid, appends it to the chain. A rejected block leaves the chain untouched.
func (c *Consensus) AddBlock(block *externalapi.DomainBlock) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	onEnd := logger.LogAndMeasureExecutionTime(log, "AddBlock")
	defer onEnd()

	blockHeight := uint64(len(c.blocks))
	err := c.validateBlock(block, blockHeight)
	if err != nil {
		return err
	}

	// The chain keeps its own copy, so that callers may not
	// change accepted blocks behind its back
	block = block.Clone()

	if c.blockStore != nil {
		err = c.blockStore.StoreBlock(blockHeight, block)
		if err != nil {
			return err
		}
	}

	applyBlock(c.utxoSet, block, blockHeight)
	c.blocks = append(c.blocks, block)

	log.Debugf("Accepted block %s at height %d with %d transactions",
		consensushashing.BlockHash(block), blockHeight, len(block.Transactions))
	return nil
}

func (c *Consensus) validateBlock(block *externalapi.DomainBlock, blockHeight uint64) error {
	if block == nil {
		return errors.Wrapf(ruleerrors.ErrInvalidBlock, "block is nil")
	}
	if blockHeight == 0 {
		return c.blockValidator.ValidateGenesisBlock(block)
	}
	return c.blockValidator.ValidateBlock(block, c.tip(), c.utxoSet, blockHeight)
}

// BlockHeight returns the number of blocks in the chain
func (c *Consensus) BlockHeight() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return uint64(len(c.blocks))
}

// Tip returns a copy of the last block of the chain, or false if the chain is empty
func (c *Consensus) Tip() (*externalapi.DomainBlock, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if len(c.blocks) == 0 {
		return nil, false
	}
	return c.tip().Clone(), true
}

func (c *Consensus) tip() *externalapi.DomainBlock {
	return c.blocks[len(c.blocks)-1]
}

// BlockAt returns a copy of the block at the given height
func (c *Consensus) BlockAt(blockHeight uint64) (*externalapi.DomainBlock, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if blockHeight >= uint64(len(c.blocks)) {
		return nil, errors.Errorf("height %d is out of range: the chain has %d blocks",
			blockHeight, len(c.blocks))
	}
	return c.blocks[blockHeight].Clone(), nil
}

// GetUTXOEntry returns the unspent entry of outpoint, or false if
// the outpoint was never created or has been spent
func (c *Consensus) GetUTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.utxoSet.Get(outpoint)
}

// UTXOSet returns a snapshot of the unspent set. Later appends are not
// reflected in it.
func (c *Consensus) UTXOSet() externalapi.ReadOnlyUTXOSet {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.utxoSet.Clone()
}

// UTXOCommitment returns the multiset hash of the unspent set
func (c *Consensus) UTXOCommitment() *externalapi.DomainHash {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.utxoSet.Commitment()
}

// RebuildUTXOs recomputes the unspent set by replaying every block of the
// chain and installs the result. It returns an error if the incrementally
// maintained set disagreed with the replayed one.
func (c *Consensus) RebuildUTXOs() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	onEnd := logger.LogAndMeasureExecutionTime(log, "RebuildUTXOs")
	defer onEnd()

	rebuilt := utxo.NewCollection()
	for blockHeight, block := range c.blocks {
		applyBlock(rebuilt, block, uint64(blockHeight))
	}

	previousCommitment := c.utxoSet.Commitment()
	rebuiltCommitment := rebuilt.Commitment()
	previousLen := c.utxoSet.Len()
	c.utxoSet = rebuilt

	if !previousCommitment.Equal(rebuiltCommitment) || previousLen != rebuilt.Len() {
		return errors.Errorf("the unspent set diverged from the chain: it had %d entries with "+
			"commitment %s, while replaying %d blocks yields %d entries with commitment %s",
			previousLen, previousCommitment, len(c.blocks), rebuilt.Len(), rebuiltCommitment)
	}

	log.Debugf("Rebuilt %d unspent outputs from %d blocks", rebuilt.Len(), len(c.blocks))
	return nil
}

// LoadFromStore builds a chain following params by replaying, in order, every
// block in blockStore. Replayed blocks are validated as if they were new. The
// returned chain keeps appending to blockStore.
func LoadFromStore(params *chainconfig.Params, blockStore model.BlockStore) (*Consensus, error) {
	count, err := blockStore.Count()
	if err != nil {
		return nil, err
	}

	// Replay into an in-memory chain, so that stored blocks aren't written again
	c, err := New(params, nil)
	if err != nil {
		return nil, err
	}
	for blockHeight := uint64(0); blockHeight < count; blockHeight++ {
		block, err := blockStore.Block(blockHeight)
		if err != nil {
			return nil, err
		}
		err = c.AddBlock(block)
		if err != nil {
			return nil, errors.Wrapf(err, "stored block at height %d is invalid", blockHeight)
		}
	}

	c.blockStore = blockStore
	log.Infof("Loaded %d blocks from the block store", count)
	return c, nil
}
