package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/belliavesha/Rxivist/pkg/bib"
	"github.com/belliavesha/Rxivist/pkg/feed"
	"github.com/belliavesha/Rxivist/pkg/prefs"
	"github.com/belliavesha/Rxivist/pkg/seed"
)

// Opts with all CLI options
type Opts struct {
	BibDir  string        `short:"d" long:"bib-dir" env:"RXIVIST_BIB_DIR" default:"." description:"directory with .bib files"`
	Prefs   string        `short:"p" long:"prefs" env:"RXIVIST_PREFS" default:"preferences_gen.json" description:"preference document to write"`
	TopN    int           `short:"n" long:"top" default:"150" description:"how many keywords and authors to keep"`
	FeedURL string        `long:"feed-url" env:"RXIVIST_FEED_URL" default:"https://export.arxiv.org/api/query" description:"arXiv query endpoint"`
	Timeout time.Duration `long:"timeout" env:"RXIVIST_TIMEOUT" default:"30s" description:"lookup timeout"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] seeding preferences from %s", opts.BibDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	ids, err := bib.Scan(opts.BibDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot scan bibliography: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[INFO] found %d bibliography entries with identifiers", len(ids))

	fetcher := feed.NewFetcher(opts.Timeout, "rxivist-seeder/"+revision).WithBaseURL(opts.FeedURL)
	store, err := seed.Build(ctx, fetcher, ids, opts.TopN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}

	if err := prefs.Save(opts.Prefs, store); err != nil {
		fmt.Fprintf(os.Stderr, "cannot write preferences: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d keywords and %d authors to %s\n",
		len(store.Keywords), len(store.Authors), opts.Prefs)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
