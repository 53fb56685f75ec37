package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/esimov/cropicon"
	"github.com/esimov/cropicon/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬─┐┌─┐┌─┐┬┌─┐┌─┐┌┐┌
│  ├┬┘│ │├─┘││  │ ││││
└─┘┴└─└─┘┴  ┴└─┘└─┘┘└┘

Trims the background around an icon and pads it into a transparent square.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(2)
	}

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flags.PrintDefaults()
	}
	bindFlags(flags, &cfg)
	flags.Parse(os.Args[1:])

	if err := cfg.validate(); err != nil {
		flags.Usage()
		fmt.Fprintln(os.Stderr, utils.DecorateText("\n"+err.Error(), utils.ErrorMessage))
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		os.Exit(1)
	}
}

// bindFlags registers the command line flags, using the config values as defaults.
func bindFlags(flags *flag.FlagSet, cfg *Config) {
	flags.StringVar(&cfg.Source, "in", cfg.Source, "Source image (file, URL or - for stdin)")
	flags.StringVar(&cfg.Destination, "out", cfg.Destination, "Destination image (.png, .bmp, .tiff or - for stdout)")
	flags.Float64Var(&cfg.Padding, "padding", cfg.Padding, "Canvas padding factor applied to the larger cropped dimension")
	flags.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "Log level")
	flags.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Hide the progress indicator and the status lines")
}

// run crops the configured source image.
func run(cfg Config) error {
	log := newLogger(cfg)

	proc := &cropicon.Processor{
		Padding: cfg.Padding,
		Logger:  log,
	}

	op := &cropicon.Ops{
		Src:      cfg.Source,
		Dst:      cfg.Destination,
		PipeName: pipeName,
		Stderr:   os.Stderr,
	}
	if cfg.Quiet {
		op.Stderr = io.Discard
	} else if term.IsTerminal(int(os.Stderr.Fd())) {
		spinnerText := fmt.Sprintf("%s %s",
			utils.DecorateText("✂ CROPICON", utils.StatusMessage),
			utils.DecorateText("⇢ cropping the icon...", utils.DefaultMessage),
		)
		proc.Spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*80, true)
	}

	return proc.Execute(op)
}

// newLogger returns the logger of the informational messages. They go to the standard
// output, unless the cropped image itself is streamed there.
func newLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetOutput(os.Stdout)
	if cfg.Destination == pipeName {
		log.SetOutput(os.Stderr)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
