package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/feedlet/feedlet/pkg/cache"
	"github.com/feedlet/feedlet/pkg/config"
	"github.com/feedlet/feedlet/pkg/feed"
	"github.com/feedlet/feedlet/pkg/scheduler"
	"github.com/feedlet/feedlet/pkg/store"
	"github.com/feedlet/feedlet/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

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

	setupLog(opts.Debug)

	log.Printf("[INFO] starting feedlet version %s", revision)

	cfg := loadConfig(opts)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] feedlet failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// loadConfig reads the config file, falling back to defaults when the default
// file is absent
func loadConfig(opts Opts) *config.Config {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && opts.Config == "config.yml" {
			log.Printf("[WARN] no config file found, using defaults")
			cfg = config.Default()
		} else {
			log.Printf("[ERROR] failed to load config %s: %v", opts.Config, err)
			os.Exit(1)
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg
}

// run wires all components and starts the scheduler and HTTP server
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	kv, err := store.New(store.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	client := feed.NewHTTPClient(cfg.Fetch.Timeout)
	discovery := feed.NewDiscovery(client, cfg.Fetch.UserAgent)
	converter := feed.NewConverter(client, cfg.Fetch.UserAgent)

	feedStore := store.NewFeedStore(kv)
	stateStore := store.NewStateStore(kv)
	tagStore := store.NewTagStore(kv)

	articleCache, err := cache.New(kv, converter, feedStore, cache.Config{
		TTL:         cfg.CacheTTL(),
		MinArticles: cfg.Cache.MinArticles,
	})
	if err != nil {
		return fmt.Errorf("init article cache: %w", err)
	}

	sched := scheduler.NewScheduler(feedStore, articleCache, scheduler.Config{
		UpdateInterval: cfg.UpdateInterval(),
		MaxWorkers:     cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, discovery, converter, articleCache, feedStore, stateStore, tagStore, revision, debug)
	return srv.Run(ctx)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
