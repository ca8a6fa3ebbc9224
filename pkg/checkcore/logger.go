package checkcore

import (
	"fmt"
	"os"
	"strings"

	"github.com/kdar/factorlog"
)

const (
	// LogVerbosityNone disables logging.
	LogVerbosityNone = 0

	// LogVerbosityDefault sets the default log level.
	LogVerbosityDefault = 1

	// LogVerbosityDebug sets the debug log level.
	LogVerbosityDebug = 2

	// LogVerbosityTrace sets trace log level.
	LogVerbosityTrace = 3
)

var (
	// DateTimeLogFormat sets the log timestamp format.
	DateTimeLogFormat = `[%{Date} %{Time "15:04:05.000"}]`

	// LogFormat sets the remaining log format.
	LogFormat = `[%{Severity}][%{ShortFile}:%{Line}] %{Message}`

	log = factorlog.New(os.Stdout, buildFormatter(DateTimeLogFormat+LogFormat))
)

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "off":
		log.SetMinMaxSeverity(factorlog.StringToSeverity("PANIC"), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityNone)
	case "error", "info":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDefault)
	case "debug":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDebug)
	case "trace":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityTrace)
	case "":
	default:
		log.Errorf("unknown log level: %s", level)
	}
}

func setLogFile(file string) {
	var target *os.File
	switch file {
	case "stdout", "":
		target = os.Stdout
	case "stderr":
		target = os.Stderr
	default:
		fileHandle, err := os.OpenFile(file, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			log.Errorf("failed to open logfile %s: %s", file, err.Error())

			return
		}
		target = fileHandle
	}
	log.SetOutput(target)
}

func buildFormatter(format string) *factorlog.StdFormatter {
	format = strings.ReplaceAll(format, "%{Pid}", fmt.Sprintf("%d", os.Getpid()))

	return factorlog.NewStdFormatter(format)
}

// LogError logs an error unless it is nil.
func LogError(err error) {
	if err != nil {
		logErr := log.Output(factorlog.ERROR, 2, err.Error())
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "failed to log: %s (%s)\n", err.Error(), logErr.Error())
		}
	}
}
