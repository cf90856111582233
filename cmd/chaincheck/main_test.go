package main

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/kaspanet/ledgercore/infrastructure/config"
)

func TestCheckChain(t *testing.T) {
	appDir, err := ioutil.TempDir("", "TestCheckChain")
	if err != nil {
		t.Fatalf("TestCheckChain: TempDir: %s", err)
	}
	defer os.RemoveAll(appDir)

	// An empty store is a valid, empty chain
	cfg, err := config.LoadConfig([]string{"--simnet", "--appdir", appDir, "--nofilelogging"})
	if err != nil {
		t.Fatalf("TestCheckChain: LoadConfig: %+v", err)
	}
	err = checkChain(cfg)
	if err != nil {
		t.Fatalf("TestCheckChain: checking an empty store: %+v", err)
	}

	// Generated blocks are stored, and replayed by the next check
	cfg, err = config.LoadConfig([]string{"--simnet", "--appdir", appDir, "--nofilelogging", "--generate", "3"})
	if err != nil {
		t.Fatalf("TestCheckChain: LoadConfig: %+v", err)
	}
	err = checkChain(cfg)
	if err != nil {
		t.Fatalf("TestCheckChain: generating blocks: %+v", err)
	}

	cfg, err = config.LoadConfig([]string{"--simnet", "--appdir", appDir, "--nofilelogging", "--generate", "2"})
	if err != nil {
		t.Fatalf("TestCheckChain: LoadConfig: %+v", err)
	}
	err = checkChain(cfg)
	if err != nil {
		t.Fatalf("TestCheckChain: extending a stored chain: %+v", err)
	}
}
