package config

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultAppDirname     = ".ledgercore"
	defaultLogDirname     = "logs"
	defaultDataDirname    = "blocks"
	defaultLogLevel       = "info"
	defaultLogFilename    = "chaincheck.log"
	defaultErrLogFilename = "chaincheck_err.log"
)

// Flags defines the configuration options for chaincheck.
type Flags struct {
	AppDir        string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir        string `long:"logdir" description:"Directory to log output"`
	LogLevel      string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging."`
	Generate      uint64 `long:"generate" description:"Extend the stored chain by this many coinbase-only blocks before checking it"`
	NetworkFlags
}

// Config defines the configuration options for chaincheck, resolved
// against the selected network.
type Config struct {
	*Flags

	// DataDir is where the block store of the selected network lives
	DataDir string

	LogFile    string
	ErrLogFile string
}

func defaultAppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultAppDirname
	}
	return filepath.Join(homeDir, defaultAppDirname)
}

// LoadConfig parses args into a Config. Every network gets its own
// directory under the app directory.
func LoadConfig(args []string) (*Config, error) {
	cfgFlags := &Flags{
		AppDir:   defaultAppDir(),
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(remainingArgs) > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", remainingArgs)
	}

	err = cfgFlags.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	networkDir := filepath.Join(cfg.AppDir, cfg.NetParams().Name)
	cfg.DataDir = filepath.Join(networkDir, defaultDataDirname)

	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(networkDir, defaultLogDirname)
	}
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	if !cfg.NoFileLogging {
		cfg.LogFile = filepath.Join(cfg.LogDir, defaultLogFilename)
		cfg.ErrLogFile = filepath.Join(cfg.LogDir, defaultErrLogFilename)
	}

	return cfg, nil
}

// cleanAndExpandPath expands environment variables and a leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
