// Ottotimer is a single countdown timer for the terminal.
//
// Usage:
//
//	ottotimer [tui] [--duration 5m] [--keypad]
//	ottotimer run 1:30 [--exit-on-ring]
package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Globals are the flags shared by every command. Each one can also be set
// through an OTTOTIMER_* environment variable or a .env file.
type Globals struct {
	Config    string   `short:"c" help:"Config file path (defaults to the user config dir)." env:"OTTOTIMER_CONFIG"`
	Alarm     string   `help:"Alarm sound file (WAV or Ogg Vorbis)." env:"OTTOTIMER_ALARM"`
	Volume    *float64 `help:"Alarm volume in log2 steps; 0 plays the file as is." env:"OTTOTIMER_VOLUME"`
	Mute      bool     `help:"Never play the alarm sound." env:"OTTOTIMER_MUTE"`
	NoDesktop bool     `help:"Disable desktop notifications." env:"OTTOTIMER_NO_DESKTOP"`
	Verbose   bool     `short:"v" help:"Enable verbose/debug logging."`
	Quiet     bool     `short:"q" help:"Disable all logging."`
	LogFile   string   `help:"File to write logs to (\"stderr\" logs to the console)." env:"OTTOTIMER_LOG_FILE"`
}

type cli struct {
	Globals `embed:""`

	Tui TuiCmd `cmd:"" default:"withargs" help:"Interactive countdown (default)."`
	Run RunCmd `cmd:"" help:"Headless countdown controlled by typed commands."`
}

func main() {
	_ = godotenv.Load()

	var c cli
	ctx := kong.Parse(&c,
		kong.Name("ottotimer"),
		kong.Description("A countdown timer that rings when time is up."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&c.Globals))
}
