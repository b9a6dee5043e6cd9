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

	"github.com/belliavesha/Rxivist/pkg/feed"
	"github.com/belliavesha/Rxivist/pkg/prefs"
	"github.com/belliavesha/Rxivist/pkg/session"
)

// Opts with all CLI options
type Opts struct {
	Prefs     string        `short:"p" long:"prefs" env:"RXIVIST_PREFS" default:"preferences_gen.json" description:"preference document path"`
	FeedURL   string        `long:"feed-url" env:"RXIVIST_FEED_URL" default:"https://export.arxiv.org/api/query" description:"arXiv query endpoint"`
	Threshold int           `long:"threshold" default:"10" description:"minimum score (exclusive) for a paper to surface"`
	Timeout   time.Duration `long:"timeout" env:"RXIVIST_TIMEOUT" default:"30s" description:"feed fetch timeout"`

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

	log.Printf("[INFO] starting rxivist version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	store, err := prefs.Load(opts.Prefs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load preferences: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[INFO] loaded %d keywords and %d authors from %s",
		len(store.Keywords), len(store.Authors), opts.Prefs)

	fetcher := feed.NewFetcher(opts.Timeout, "rxivist/"+revision).WithBaseURL(opts.FeedURL)
	sess := session.New(store, opts.Prefs, fetcher, os.Stdin, os.Stdout).WithThreshold(opts.Threshold)

	if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "session failed: %v\n", err)
		os.Exit(1)
	}

	log.Print("[INFO] session finished")
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
