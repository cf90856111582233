package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ledgercore/domain/consensus"
	"github.com/kaspanet/ledgercore/domain/consensus/datastructures/blockstore"
	"github.com/kaspanet/ledgercore/infrastructure/config"
	"github.com/kaspanet/ledgercore/infrastructure/db/database/ldb"
	"github.com/kaspanet/ledgercore/infrastructure/logger"
	"github.com/kaspanet/ledgercore/infrastructure/os/signal"
	"github.com/kaspanet/ledgercore/util/panics"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, nil)
	interrupt := signal.InterruptListener()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	if cfg.LogLevel == "show" {
		fmt.Printf("Supported subsystems: %s\n", strings.Join(logger.SupportedSubsystems(), ", "))
		os.Exit(0)
	}

	logger.InitLog(cfg.LogFile, cfg.ErrLogFile)

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		panics.Exit(log, err.Error())
	}

	doneChan := make(chan error, 1)
	spawn(func() {
		doneChan <- checkChain(cfg)
	})

	select {
	case err := <-doneChan:
		if err != nil {
			panics.Exit(log, fmt.Sprintf("Chain check failed: %+v", err))
		}
	case <-interrupt:
		log.Infof("Chain check interrupted")
	}

	logger.BackendLog.Close()
}

// checkChain replays the stored chain of the configured network, optionally
// extends it, and verifies that its unspent set matches a full replay
func checkChain(cfg *config.Config) error {
	params := cfg.NetParams()
	log.Infof("Checking the %s chain stored in %s", params.Name, cfg.DataDir)

	db, err := ldb.NewLevelDB(cfg.DataDir)
	if err != nil {
		return errors.Wrapf(err, "couldn't open the block store")
	}
	defer db.Close()

	store, err := blockstore.New(db)
	if err != nil {
		return err
	}

	chain, err := consensus.LoadFromStore(params, store)
	if err != nil {
		return err
	}

	if cfg.Generate > 0 {
		err = generateBlocks(chain, params, cfg.Generate)
		if err != nil {
			return err
		}
	}

	err = chain.RebuildUTXOs()
	if err != nil {
		return err
	}

	height := chain.BlockHeight()
	if height == 0 {
		log.Infof("The chain is empty")
		return nil
	}

	tip, _ := chain.Tip()
	log.Infof("Chain height: %d", height)
	log.Infof("Tip: %s", logger.NewLogClosure(func() string {
		return blockHashString(tip)
	}))
	log.Infof("Unspent outputs: %d", chain.UTXOSet().Len())
	log.Infof("UTXO commitment: %s", chain.UTXOCommitment())
	return nil
}
