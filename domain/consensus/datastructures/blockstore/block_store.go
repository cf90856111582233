package blockstore

import (
	"bytes"
	"encoding/binary"

	"github.com/kaspanet/ledgercore/domain/consensus/model"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/serialization"
	"github.com/kaspanet/ledgercore/infrastructure/db/database"
	"github.com/pkg/errors"
)

var bucket = database.MakeBucket([]byte("blocks"))
var countKey = database.MakeBucket(nil).Key([]byte("blocks-count"))

// blockStore represents a durable, append-only store of the chain's blocks
type blockStore struct {
	db          database.Database
	countCached uint64
}

// New instantiates a new BlockStore over db
func New(db database.Database) (model.BlockStore, error) {
	blockStore := &blockStore{
		db: db,
	}

	err := blockStore.initializeCount()
	if err != nil {
		return nil, err
	}

	return blockStore, nil
}

func (bs *blockStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bs.db.Has(countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bs.db.Get(countKey)
		if err != nil {
			return err
		}
		count, err = deserializeBlockCount(countBytes)
		if err != nil {
			return err
		}
	}
	bs.countCached = count
	return nil
}

// StoreBlock appends block to the store. blockHeight must equal the
// current count, so that stored heights are always contiguous.
func (bs *blockStore) StoreBlock(blockHeight uint64, block *externalapi.DomainBlock) error {
	if blockHeight != bs.countCached {
		return errors.Errorf("cannot store block at height %d: the store holds %d blocks",
			blockHeight, bs.countCached)
	}

	blockBytes, err := serialization.SerializeBlock(block)
	if err != nil {
		return err
	}
	countBytes, err := serializeBlockCount(blockHeight + 1)
	if err != nil {
		return err
	}

	dbTx, err := bs.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = dbTx.Put(heightAsKey(blockHeight), blockBytes)
	if err != nil {
		return err
	}
	err = dbTx.Put(countKey, countBytes)
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	bs.countCached = blockHeight + 1
	return nil
}

// Block gets the block stored at the given height
func (bs *blockStore) Block(blockHeight uint64) (*externalapi.DomainBlock, error) {
	if blockHeight >= bs.countCached {
		return nil, errors.Wrapf(database.ErrNotFound, "no block at height %d", blockHeight)
	}

	blockBytes, err := bs.db.Get(heightAsKey(blockHeight))
	if err != nil {
		return nil, err
	}
	block, err := serialization.DeserializeBlock(blockBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "block at height %d is corrupted", blockHeight)
	}
	return block, nil
}

// Count returns the number of stored blocks
func (bs *blockStore) Count() (uint64, error) {
	return bs.countCached, nil
}

// heightAsKey encodes the height big-endian so that the
// database orders blocks by height
func heightAsKey(blockHeight uint64) *database.Key {
	var keyBytes [8]byte
	binary.BigEndian.PutUint64(keyBytes[:], blockHeight)
	return bucket.Key(keyBytes[:])
}

func deserializeBlockCount(countBytes []byte) (uint64, error) {
	var count uint64
	r := bytes.NewReader(countBytes)
	err := serialization.ReadElement(r, &count)
	if err != nil {
		return 0, err
	}
	if r.Len() != 0 {
		return 0, errors.Errorf("block count has %d trailing bytes", r.Len())
	}
	return count, nil
}

func serializeBlockCount(count uint64) ([]byte, error) {
	w := &bytes.Buffer{}
	err := serialization.WriteElement(w, count)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
