package blockstore

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/testutils"
	"github.com/kaspanet/ledgercore/infrastructure/db/database"
	"github.com/kaspanet/ledgercore/infrastructure/db/database/ldb"
)

func testChain(t *testing.T) []*externalapi.DomainBlock {
	params := chainconfig.SimnetParams.Clone()
	_, publicKey := testutils.GenerateKeyPair(t)

	genesis := testutils.BuildGenesisBlock(params, 1000, testutils.NewCoinbase(1, publicKey))
	block1 := testutils.BuildBlock(params, genesis, 2000, testutils.NewCoinbase(2, publicKey))
	return []*externalapi.DomainBlock{genesis, block1}
}

func TestBlockStore(t *testing.T) {
	path, err := ioutil.TempDir("", "TestBlockStore")
	if err != nil {
		t.Fatalf("TestBlockStore: TempDir: %s", err)
	}
	defer os.RemoveAll(path)

	db, err := ldb.NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestBlockStore: NewLevelDB: %+v", err)
	}

	store, err := New(db)
	if err != nil {
		t.Fatalf("TestBlockStore: New: %+v", err)
	}

	blocks := testChain(t)
	for height, block := range blocks {
		err = store.StoreBlock(uint64(height), block)
		if err != nil {
			t.Fatalf("TestBlockStore: StoreBlock(%d): %+v", height, err)
		}
	}

	// Heights must be contiguous
	err = store.StoreBlock(5, blocks[0])
	if err == nil {
		t.Fatalf("TestBlockStore: StoreBlock with a gap unexpectedly succeeded")
	}
	err = store.StoreBlock(0, blocks[0])
	if err == nil {
		t.Fatalf("TestBlockStore: StoreBlock over an existing height unexpectedly succeeded")
	}

	_, err = store.Block(uint64(len(blocks)))
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestBlockStore: expected a not-found error, got: %v", err)
	}

	err = db.Close()
	if err != nil {
		t.Fatalf("TestBlockStore: Close: %+v", err)
	}

	// Everything must survive reopening
	db, err = ldb.NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestBlockStore: NewLevelDB: %+v", err)
	}
	defer db.Close()

	store, err = New(db)
	if err != nil {
		t.Fatalf("TestBlockStore: New: %+v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("TestBlockStore: Count: %+v", err)
	}
	if count != uint64(len(blocks)) {
		t.Fatalf("TestBlockStore: expected %d blocks, got %d", len(blocks), count)
	}

	for height, expected := range blocks {
		block, err := store.Block(uint64(height))
		if err != nil {
			t.Fatalf("TestBlockStore: Block(%d): %+v", height, err)
		}
		if !block.Equal(expected) {
			t.Fatalf("TestBlockStore: block %d changed after a round trip.\nwant: %s\ngot: %s",
				height, spew.Sdump(expected), spew.Sdump(block))
		}
	}
}
