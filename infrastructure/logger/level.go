package logger

import "strings"

// Level is the lowest severity a logger or an output lets through
type Level uint32

// Levels, from the most verbose to silent
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are printed in every log line
var levelTags = map[Level]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
}

// levelNames are the accepted spellings of every level, case insensitive
var levelNames = map[string]Level{
	"trace": LevelTrace, "trc": LevelTrace,
	"debug": LevelDebug, "dbg": LevelDebug,
	"info": LevelInfo, "inf": LevelInfo,
	"warn": LevelWarn, "wrn": LevelWarn,
	"error": LevelError, "err": LevelError,
	"critical": LevelCritical, "crt": LevelCritical,
	"off": LevelOff,
}

// LevelFromString parses a level name such as "debug" or "dbg". Unknown names
// return LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

func (l Level) String() string {
	tag, ok := levelTags[l]
	if !ok {
		return "OFF"
	}
	return tag
}
