package log

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// concurrency-safe counter
var ctr = newCounter()

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Store(&l)
}

// InitLogging configures the global logger from the log-level, log-format and
// disable-log-color settings, which viper reads from flags or the environment.
func InitLogging(showLogLevelSetMessage bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var l zerolog.Logger
	if strings.EqualFold(viper.GetString("log-format"), "json") {
		l = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
			NoColor:    viper.GetBool("disable-log-color"),
		}).With().Timestamp().Logger()
	}

	levelName := viper.GetString("log-level")
	if levelName == "" {
		levelName = zerolog.InfoLevel.String()
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || level == zerolog.NoLevel {
		l.Warn().Msgf("Invalid log level %q, defaulting to info", levelName)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	SetLogger(&l)

	if showLogLevelSetMessage {
		Infof("Log level set to %s", level)
	}
}

// GetLogger returns the global logger.
func GetLogger() *zerolog.Logger {
	return logger.Load()
}

// SetLogger replaces the global logger.
func SetLogger(l *zerolog.Logger) {
	if l == nil {
		return
	}
	logger.Store(l)
}

func Errorf(format string, a ...interface{}) {
	GetLogger().Error().Msgf(format, a...)
}

func DedupedErrorf(logTypeLimit int, format string, a ...interface{}) {
	ok, last := ctr.admit(format, logTypeLimit)
	if !ok {
		return
	}

	Errorf(format, a...)
	if last {
		Infof("%s logged %d times: suppressing future logs", format, logTypeLimit)
	}
}

func Warnf(format string, a ...interface{}) {
	GetLogger().Warn().Msgf(format, a...)
}

func DedupedWarningf(logTypeLimit int, format string, a ...interface{}) {
	ok, last := ctr.admit(format, logTypeLimit)
	if !ok {
		return
	}

	Warnf(format, a...)
	if last {
		Infof("%s logged %d times: suppressing future logs", format, logTypeLimit)
	}
}

func Infof(format string, a ...interface{}) {
	GetLogger().Info().Msgf(format, a...)
}

func DedupedInfof(logTypeLimit int, format string, a ...interface{}) {
	ok, last := ctr.admit(format, logTypeLimit)
	if !ok {
		return
	}

	Infof(format, a...)
	if last {
		Infof("%s logged %d times: suppressing future logs", format, logTypeLimit)
	}
}

func Debugf(format string, a ...interface{}) {
	GetLogger().Debug().Msgf(format, a...)
}

func Tracef(format string, a ...interface{}) {
	GetLogger().Trace().Msgf(format, a...)
}

func Profilef(format string, a ...interface{}) {
	GetLogger().Debug().Str("profile", "true").Msg(fmt.Sprintf(format, a...))
}

// Profile logs the time elapsed since start at debug level.
func Profile(start time.Time, name string) {
	elapsed := time.Since(start)
	Profilef("%s: %s", elapsed, name)
}

// ProfileWithThreshold logs like Profile, but only when the elapsed time
// exceeds threshold.
func ProfileWithThreshold(start time.Time, threshold time.Duration, name string) {
	elapsed := time.Since(start)
	if elapsed > threshold {
		Profilef("%s: %s", elapsed, name)
	}
}
