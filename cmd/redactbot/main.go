// Command redactbot picks a recent status matching one of its keywords,
// redacts and jiggles it, and posts the result.
//
// Usage:
//
//	redactbot [-config config.yaml] [-dry-run] [-input statuses.jsonl]
//	redactbot config.yaml
//
// Exit status is 1 when no credentials are configured or the run fails, and
// 2 when a single credential is missing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/cognicore/redactbot/internal/bot"
	"github.com/cognicore/redactbot/internal/source"
	"github.com/cognicore/redactbot/internal/twitter"
	"github.com/cognicore/redactbot/pkg/redactbot"
	"github.com/cognicore/redactbot/pkg/redactbot/config"
	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
	"github.com/cognicore/redactbot/pkg/redactbot/store/memstore"
	"github.com/cognicore/redactbot/pkg/redactbot/store/sqlite"
)

const (
	exitOK                = 0
	exitFailure           = 1
	exitMissingCredential = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	// A missing .env file is fine.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("redactbot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Config file (default config.yaml)")
		dryRun     = fs.Bool("dry-run", false, "Do not post, only log and record the run")
		inputPath  = fs.String("input", "", "Read statuses from a JSONL file instead of searching")
	)
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}
	path := *configPath
	if path == "" {
		path = fs.Arg(0)
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("load config", "path", path, "err", err)
		return exitFailure
	}
	log := cfg.NewLogger(stderr)

	offline := *inputPath != ""
	if err := cfg.Authorization.Check(); err != nil {
		if !offline {
			return authExitCode(log, err)
		}
		log.Info("no usable credentials, forcing dry run", "reason", err)
		*dryRun = true
	}

	runner, cleanup, err := buildRunner(ctx, cfg, *inputPath, *dryRun, log)
	if err != nil {
		log.Error("setup failed", "err", err)
		return exitFailure
	}
	defer cleanup()

	r, err := runner.Run(ctx)
	if err != nil {
		log.Error("run failed", "err", err)
		return exitFailure
	}
	log.Info("run recorded", "id", r.ID, "status", r.StatusID, "posted", r.PostedID)
	return exitOK
}

func authExitCode(log *slog.Logger, err error) int {
	var missing *config.MissingCredentialError
	switch {
	case errors.As(err, &missing):
		log.Error("required authorization item missing", "item", missing.Name)
		return exitMissingCredential
	case errors.Is(err, internalerr.ErrNoAuthorization):
		log.Error("no authorization items defined")
		return exitFailure
	default:
		log.Error("authorization", "err", err)
		return exitFailure
	}
}

func buildRunner(ctx context.Context, cfg *config.Config, inputPath string, dryRun bool, log *slog.Logger) (*bot.Runner, func(), error) {
	components, err := cfg.Loader().Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load resources: %w", err)
	}
	log.Info("loaded resources", "resources", components)

	engine := redactbot.New(redactbot.Options{
		Analyzer: components.Analyzer,
		Synonyms: components.Thesaurus,
		Logger:   log,
	})

	var st store.Store = memstore.New()
	if cfg.Database != "" {
		st, err = sqlite.OpenSQLite(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
	}

	opts := bot.Options{
		Store:  st,
		Engine: engine,
		Terms:  components.Thesaurus.Expand(cfg.Keywords...),
		Ratios: redactbot.Ratios{
			Word:   cfg.RedactWordRatio,
			Noun:   cfg.RedactNounRatio,
			Jiggle: cfg.JiggleRate,
		},
		RetryLimit: cfg.RetryLimit,
		RetryDelay: cfg.RetryDelay,
		DryRun:     dryRun,
		Logger:     log,
	}

	if cfg.Authorization.Check() == nil {
		a := cfg.Authorization
		client := twitter.New(cfg.APIBase, twitter.Credentials{
			ConsumerKey:    a.ConsumerKey,
			ConsumerSecret: a.ConsumerSecret,
			TokenKey:       a.TokenKey,
			TokenSecret:    a.TokenSecret,
		})
		opts.Searcher = client
		opts.Poster = client
	}

	if inputPath != "" {
		src, err := source.LoadFromJSONL(inputPath, log)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("load input: %w", err)
		}
		log.Info("loaded statuses", "path", inputPath, "count", src.Len())
		opts.Searcher = src
	}

	cleanup := func() {
		st.Close()
	}
	return bot.New(opts), cleanup, nil
}
