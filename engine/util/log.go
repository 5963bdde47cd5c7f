package util

import "fmt"

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogVoxel | LogCulling | LogSettings | LogIO | LogSystem

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogVoxel LogCategory = 1 << iota
	LogCulling
	LogSettings
	LogIO
	LogSystem
)

// SetLogLevel is used by the command line to switch verbosity.
func SetLogLevel(lvl LogLevel) {
	GLOBAL_LOG_LEVEL = lvl
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	println(txt)
}

func LogVoxelDebug(txt string) {
	log(LogVoxel, LogLevelDebug, txt)
}

func LogVoxelError(txt string) {
	log(LogVoxel, LogLevelError, txt)
}

func LogCullingInfo(txt string) {
	log(LogCulling, LogLevelInfo, txt)
}

func LogCullingDebug(txt string) {
	log(LogCulling, LogLevelDebug, txt)
}

func LogSettingsInfo(txt string) {
	log(LogSettings, LogLevelInfo, txt)
}

func LogSettingsError(txt string) {
	log(LogSettings, LogLevelError, txt)
}

func LogIODebug(txt string) {
	log(LogIO, LogLevelDebug, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(err error) {
	log(LogSystem, LogLevelError, fmt.Sprintf("[System] ERR - %+v", err))
}
