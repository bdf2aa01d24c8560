// Command redact-cli redacts and jiggles text typed at a prompt or passed
// with -text, and lists the runs recorded by the bot.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/cognicore/redactbot/pkg/redactbot"
	"github.com/cognicore/redactbot/pkg/redactbot/config"
	"github.com/cognicore/redactbot/pkg/redactbot/mask"
	"github.com/cognicore/redactbot/pkg/redactbot/store/sqlite"
)

func main() {
	defaults := redactbot.DefaultRatios()
	var (
		text          = flag.String("text", "", "One-shot text (non-interactive mode)")
		wordRatio     = flag.Float64("word", defaults.Word, "Share of words to redact")
		nounRatio     = flag.Float64("noun", defaults.Noun, "Share of noun phrases to redact")
		jiggleRate    = flag.Float64("jiggle", defaults.Jiggle, "Share of remaining words to swap for synonyms")
		seed          = flag.Uint64("seed", 0, "Random seed (0 picks one)")
		stoplistPath  = flag.String("stoplist", "", "Stoplist file (optional)")
		phrasesPath   = flag.String("phrases", "", "Phrase dictionary file (optional)")
		thesaurusPath = flag.String("thesaurus", "", "Thesaurus file (optional)")
		dbPath        = flag.String("db", "", "Run database, for -history")
		history       = flag.Int("history", 0, "List the N most recent bot runs and exit")
	)
	flag.Parse()

	ctx := context.Background()

	if *history > 0 {
		if *dbPath == "" {
			log.Fatal("--db required with --history")
		}
		if err := printHistory(ctx, os.Stdout, *dbPath, *history); err != nil {
			log.Fatal(err)
		}
		return
	}

	ratios := redactbot.Ratios{Word: *wordRatio, Noun: *nounRatio, Jiggle: *jiggleRate}
	if err := ratios.Validate(); err != nil {
		log.Fatal(err)
	}

	engine, components, err := buildEngine(*stoplistPath, *phrasesPath, *thesaurusPath, *seed)
	if err != nil {
		log.Fatal(err)
	}

	// One-shot mode
	if *text != "" {
		if err := transform(os.Stdout, engine, *text, ratios); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  redactbot CLI")
	fmt.Printf("  word %.2f  noun %.2f  jiggle %.2f\n", ratios.Word, ratios.Noun, ratios.Jiggle)
	describeResources(os.Stdout, components)
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type some text (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := transform(os.Stdout, engine, line, ratios); err != nil {
			fmt.Println("Error:", err)
		}
	}

	fmt.Println("\nGoodbye!")
}

func buildEngine(stoplistPath, phrasesPath, thesaurusPath string, seed uint64) (*redactbot.Engine, *config.Components, error) {
	loader := config.Loader{
		StoplistPath:  stoplistPath,
		PhrasesPath:   phrasesPath,
		ThesaurusPath: thesaurusPath,
	}

	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	opts := redactbot.Options{
		Analyzer: components.Analyzer,
		Synonyms: components.Thesaurus,
	}
	if seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}
	return redactbot.New(opts), components, nil
}

func describeResources(w io.Writer, c *config.Components) {
	stats := c.Thesaurus.Stats()
	fmt.Fprintf(w, "  %d stopwords, %d phrases, %d synsets (%d words)\n",
		c.Stoplist.Len(), c.Phrases.Len(), stats.Synsets, stats.Words)
}

func transform(w io.Writer, engine *redactbot.Engine, text string, ratios redactbot.Ratios) error {
	res, err := engine.Transform(text, ratios)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	fmt.Fprintf(w, "  masked:   %s\n", mask.Mask(text))
	fmt.Fprintf(w, "  redacted: %s\n", res.Redacted)
	fmt.Fprintf(w, "  jiggled:  %s\n", res.Jiggled)
	fmt.Fprintln(w)
	return nil
}

func printHistory(ctx context.Context, w io.Writer, dbPath string, limit int) error {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	runs, err := st.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("recent runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		posted := "dry run"
		if !r.DryRun() {
			posted = fmt.Sprintf("posted %d", r.PostedID)
		}
		fmt.Fprintf(w, "--- %s  %s  status %d  (%s, query %q)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.StatusID, posted, r.Query)
		fmt.Fprintf(w, "  original: %s\n", r.Original)
		fmt.Fprintf(w, "  redacted: %s\n", r.Redacted)
		fmt.Fprintf(w, "  jiggled:  %s\n", r.Jiggled)
	}
	return nil
}
