package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagJSON         bool // for CI
)

func ConfigureLoggerFromFlags() {
	var out io.Writer = os.Stdout
	level := "info"

	switch {
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Out:   out,
	})
}
