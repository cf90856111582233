package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// Callsite flags make every log line carry the file and line it was logged
// from. NewBackend reads them from the comma separated LOGFLAGS environment
// variable, which accepts "longfile" and "shortfile".
const (
	// CallsiteLongFile prints the full path of the callsite, e.g. /a/b/c/main.go:123
	CallsiteLongFile uint32 = 1 << iota

	// CallsiteShortFile prints only the file name, e.g. main.go:123.
	// It takes precedence over CallsiteLongFile.
	CallsiteShortFile
)

const (
	rotateThresholdKB = 100 * 1000
	maxRolls          = 8
)

var errAlreadyRunning = errors.New("the logger backend is already running")

func callsiteFlagsFromEnv() uint32 {
	var flags uint32
	for _, flag := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch strings.TrimSpace(flag) {
		case "longfile":
			flags |= CallsiteLongFile
		case "shortfile":
			flags |= CallsiteShortFile
		}
	}
	return flags
}

// output is a destination of log lines along with the lowest level it accepts
type output struct {
	io.WriteCloser
	minLevel Level
}

// Backend fans the lines of all subsystem loggers out to its outputs.
// Outputs are attached before Run. Lines logged before Run or after Close
// are dropped.
type Backend struct {
	callsiteFlags uint32
	running       uint32
	closed        uint32

	outputs []output
	entries chan logEntry
	done    chan struct{}

	closeOnce sync.Once
}

// NewBackend returns a backend with no outputs, configured by LOGFLAGS
func NewBackend() *Backend {
	return newBackend(callsiteFlagsFromEnv())
}

func newBackend(callsiteFlags uint32) *Backend {
	return &Backend{
		callsiteFlags: callsiteFlags,
		entries:       make(chan logEntry),
		done:          make(chan struct{}),
	}
}

// AttachOutputs attaches the outputs a ledger process logs to: logFile gets
// every line, errLogFile gets warnings and above, and stdout gets info and
// above. Empty file paths are skipped.
func (b *Backend) AttachOutputs(logFile, errLogFile string) error {
	files := []struct {
		path     string
		minLevel Level
	}{
		{path: logFile, minLevel: LevelTrace},
		{path: errLogFile, minLevel: LevelWarn},
	}
	for _, file := range files {
		if file.path == "" {
			continue
		}
		err := b.AddLogFile(file.path, file.minLevel)
		if err != nil {
			return err
		}
	}
	return b.AddLogWriter(os.Stdout, LevelInfo)
}

// AddLogFile attaches a rotating log file accepting lines of minLevel and
// above. The file and its directory are created if needed.
func (b *Backend) AddLogFile(path string, minLevel Level) error {
	if b.IsRunning() {
		return errAlreadyRunning
	}

	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create the directory of log file %s", path)
	}
	logRotator, err := rotator.New(path, rotateThresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create a rotator for log file %s", path)
	}
	return b.AddLogWriter(logRotator, minLevel)
}

// AddLogWriter attaches writer as an output accepting lines of minLevel and above.
// The backend closes writer when it's closed.
func (b *Backend) AddLogWriter(writer io.WriteCloser, minLevel Level) error {
	if b.IsRunning() {
		return errAlreadyRunning
	}
	b.outputs = append(b.outputs, output{WriteCloser: writer, minLevel: minLevel})
	return nil
}

// Run starts dispatching logged lines to the outputs. It may only be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.running, 0, 1) {
		return errAlreadyRunning
	}
	go b.dispatch()
	return nil
}

func (b *Backend) dispatch() {
	defer close(b.done)
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error in the logger backend: %+v\n%s\n", err, debug.Stack())
		}
	}()

	for entry := range b.entries {
		for _, out := range b.outputs {
			if entry.level >= out.minLevel {
				_, _ = out.Write(entry.line)
			}
		}
	}
}

// IsRunning returns whether Run was called
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.running) != 0
}

func (b *Backend) accepts() bool {
	return b.IsRunning() && atomic.LoadUint32(&b.closed) == 0
}

// Close flushes the lines logged so far and closes every output.
// Closing more than once is a no-op.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		atomic.StoreUint32(&b.closed, 1)
		close(b.entries)
		if b.IsRunning() {
			<-b.done
		}
		for _, out := range b.outputs {
			_ = out.Close()
		}
	})
}

// Logger returns a logger tagged with subsystemTag that writes to b.
// It logs nothing until given a level.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: LevelOff, tag: subsystemTag, b: b}
}
