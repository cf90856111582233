package ldb

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/kaspanet/ledgercore/infrastructure/db/database"
)

func prepareDatabaseForTest(t *testing.T, testName string) (ldb *LevelDB, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly "+
			"failed: %s", testName, err)
	}
	ldb, err = NewLevelDB(path)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return ldb, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	// Put something into the db
	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	// Get from the key previously put to
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}

	// Make sure that the put data and the get data are equal
	if !bytes.Equal(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Has returned "+
			"unexpected error: %s", err)
	}
	if !exists {
		t.Fatalf("TestLevelDBSanity: Has unexpectedly returned false")
	}

	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned "+
			"unexpected error: %s", err)
	}
	_, err = ldb.Get(key)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestLevelDBSanity: Get after Delete "+
			"returned an unexpected error: %v", err)
	}
}

func TestLevelDBTransactionSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBTransactionSanity")
	defer teardownFunc()

	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	value := []byte("value")

	// Rolled back writes are never visible
	tx, err := ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin unexpectedly failed: %s", err)
	}
	err = tx.Put(key, value)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put unexpectedly failed: %s", err)
	}
	err = tx.Rollback()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Rollback unexpectedly failed: %s", err)
	}
	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has unexpectedly failed: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBTransactionSanity: rolled back data is visible")
	}

	// Committed writes are
	tx, err = ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin unexpectedly failed: %s", err)
	}
	err = tx.Put(key, value)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put unexpectedly failed: %s", err)
	}
	err = tx.Commit()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit unexpectedly failed: %s", err)
	}
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Get unexpectedly failed: %s", err)
	}
	if !bytes.Equal(getData, value) {
		t.Fatalf("TestLevelDBTransactionSanity: want %s, got %s", value, getData)
	}

	// A closed transaction refuses further use
	err = tx.Put(key, value)
	if err == nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put into a closed transaction unexpectedly succeeded")
	}
	err = tx.Commit()
	if err == nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit of a closed transaction unexpectedly succeeded")
	}
	err = tx.RollbackUnlessClosed()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: RollbackUnlessClosed unexpectedly failed: %s", err)
	}
}

func TestLevelDBReopen(t *testing.T) {
	path, err := ioutil.TempDir("", "TestLevelDBReopen")
	if err != nil {
		t.Fatalf("TestLevelDBReopen: TempDir unexpectedly failed: %s", err)
	}
	defer os.RemoveAll(path)

	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	value := []byte("persisted")

	ldb, err := NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: NewLevelDB unexpectedly failed: %s", err)
	}
	err = ldb.Put(key, value)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Put unexpectedly failed: %s", err)
	}
	err = ldb.Close()
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Close unexpectedly failed: %s", err)
	}

	ldb, err = NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: NewLevelDB unexpectedly failed: %s", err)
	}
	defer ldb.Close()

	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Get unexpectedly failed: %s", err)
	}
	if !bytes.Equal(getData, value) {
		t.Fatalf("TestLevelDBReopen: want %s, got %s", value, getData)
	}
}
