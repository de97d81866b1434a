package logger

// Console writes info and debug to stdout, everything else to stderr.
type Console struct {
	Enabled          bool
	UseConsoleWriter bool // human readable output instead of JSON
}

// RollingFile is one lumberjack rotated log file.
type RollingFile struct {
	Name       string // file name below LogFile.Path; defaults to <group>.log
	MaxSize    int    // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// LogFile holds one rolling file per level group plus the access log.
type LogFile struct {
	Enabled bool
	Path    string

	Access RollingFile
	Error  RollingFile // error, fatal and panic
	Warn   RollingFile
	Info   RollingFile // info and debug
	Trace  RollingFile
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes the fiber access log to stdout.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log check alive calls

	AppName     string
	ServiceName string

	Console Console
	File    LogFile
}
