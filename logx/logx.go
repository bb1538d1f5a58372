package logx

import (
	"os"

	"github.com/princinho/boutique/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var DefaultOpts = &Opts{
	Environment: config.Development,
}

type Opts struct {
	Environment config.Environment
}

func safe(opts ...Opts) *Opts {
	if len(opts) == 0 {
		return DefaultOpts
	}
	return &opts[0]
}

func Init(opts ...Opts) {
	if safe(opts...).Environment.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	} else {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
