package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers     = make(map[string]*Logger)
	subsystemLoggersLock sync.Mutex
)

// RegisterSubSystem returns the logger of the given subsystem, creating it
// on first use. Subsystem loggers start with LevelInfo.
func RegisterSubSystem(subsystem string) *Logger {
	subsystem = trimTag(subsystem)

	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		logger.SetLevel(LevelInfo)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches the log file, the error log file and stdout to the
// backend log, and starts it. It exits the process if any of them fails.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AttachOutputs(logFile, errLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching the log outputs: %+v\n", err)
		os.Exit(1)
	}

	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %+v\n", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) {
	level, ok := LevelFromString(logLevel)
	if !ok {
		level = LevelInfo
	}
	RegisterSubSystem(subsystemID).SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func SetLogLevels(logLevel string) {
	// Configure all sub-systems with the new logging level. Dynamically
	// create loggers as needed.
	for _, subsystemID := range SupportedSubsystems() {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()

	// Convert the subsystemLoggers map keys to a slice.
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsystems for stable display.
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
//
// The level is either a single level for all subsystems, or a comma separated
// list of <subsystem>=<level> pairs, optionally with one bare level that
// applies to every subsystem not named.
func ParseAndSetLogLevels(logLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(logLevel, ",") && !strings.Contains(logLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(logLevel) {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		// Change the logging level for all subsystems.
		SetLogLevels(logLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	levelPairs := make(map[string]string)
	for _, logLevelPair := range strings.Split(logLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			if !validLogLevel(logLevelPair) {
				return errors.Errorf("the specified debug level [%s] is invalid", logLevelPair)
			}
			SetLogLevels(logLevelPair)
			continue
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		if len(fields) != 2 {
			return errors.Errorf("the specified debug level has an invalid format [%s] "+
				"-- use format [<subsystem>=<level>,<subsystem2>=<level2>,...]", logLevelPair)
		}
		subsysID, logLevel := trimTag(fields[0]), fields[1]

		subsystemLoggersLock.Lock()
		_, exists := subsystemLoggers[subsysID]
		subsystemLoggersLock.Unlock()
		if !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- "+
				"supported subsystems are %s", subsysID, SupportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		levelPairs[subsysID] = logLevel
	}

	// Explicit pairs win over a bare level regardless of their order
	for subsysID, logLevel := range levelPairs {
		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := LevelFromString(logLevel)
	return ok
}
