// Package bot runs one redaction cycle: find a status, transform it, post
// the result and remember it.
package bot

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/redactbot/internal/twitter"
	"github.com/cognicore/redactbot/pkg/redactbot"
	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/sample"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
	"github.com/cognicore/redactbot/pkg/redactbot/store/memstore"
)

// DefaultRetryLimit is the number of searches tried when Options leaves it
// unset.
const DefaultRetryLimit = 5

// Searcher finds recent statuses for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]twitter.Status, error)
}

// Poster publishes a status.
type Poster interface {
	Update(ctx context.Context, text string) (twitter.Status, error)
}

// Transformer redacts and jiggles text. *redactbot.Engine implements it.
type Transformer interface {
	Transform(text string, r redactbot.Ratios) (redactbot.Result, error)
}

// Options configures a Runner.
type Options struct {
	Searcher Searcher
	Poster   Poster // unused on dry runs
	Store    store.Store
	Engine   Transformer

	Terms      []string // search terms; one is picked per attempt
	Ratios     redactbot.Ratios
	RetryLimit int
	RetryDelay time.Duration
	DryRun     bool

	Rand   sample.Source
	Now    func() time.Time
	Logger *slog.Logger
}

// Runner performs bot runs. It is not safe for concurrent use.
type Runner struct {
	opts    Options
	entropy *ulid.MonotonicEntropy
	log     *slog.Logger
}

// New creates a Runner. A nil store keeps history in memory only.
func New(opts Options) *Runner {
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	if opts.RetryLimit <= 0 {
		opts.RetryLimit = DefaultRetryLimit
	}
	if opts.Rand == nil {
		opts.Rand = mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		opts:    opts,
		entropy: ulid.Monotonic(rand.Reader, 0),
		log:     opts.Logger,
	}
}

// Run finds an unused status, transforms it, posts the jiggled text unless
// this is a dry run, and records the run. It gives up with
// internalerr.ErrNoCandidates after RetryLimit searches that failed or
// found nothing new.
func (r *Runner) Run(ctx context.Context) (store.Run, error) {
	if len(r.opts.Terms) == 0 {
		return store.Run{}, fmt.Errorf("%w: no search terms", internalerr.ErrInvalidConfig)
	}
	if r.opts.Searcher == nil || r.opts.Engine == nil {
		return store.Run{}, fmt.Errorf("%w: searcher and engine required", internalerr.ErrInvalidConfig)
	}
	if !r.opts.DryRun && r.opts.Poster == nil {
		return store.Run{}, fmt.Errorf("%w: poster required unless dry run", internalerr.ErrInvalidConfig)
	}

	query, status, err := r.pick(ctx)
	if err != nil {
		return store.Run{}, err
	}
	r.log.Info("using status", "id", status.ID, "query", query)
	r.log.Info("original", "text", status.Text)

	res, err := r.opts.Engine.Transform(status.Text, r.opts.Ratios)
	if err != nil {
		return store.Run{}, fmt.Errorf("transform status %d: %w", status.ID, err)
	}
	r.log.Info("redacted", "text", res.Redacted)
	r.log.Info("jiggled", "text", res.Jiggled)

	now := r.opts.Now()
	run := store.Run{
		ID:        ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		StatusID:  status.ID,
		Query:     query,
		Original:  res.Original,
		Redacted:  res.Redacted,
		Jiggled:   res.Jiggled,
		CreatedAt: now.UTC(),
	}

	if r.opts.DryRun {
		r.log.Info("dry run, not posting")
	} else {
		posted, err := r.opts.Poster.Update(ctx, res.Jiggled)
		if err != nil {
			r.log.Error("failed to update status", "err", err)
			return store.Run{}, fmt.Errorf("update status: %w", err)
		}
		run.PostedID = posted.ID
		r.log.Info("updated status", "id", posted.ID)
	}

	if err := r.opts.Store.RecordRun(ctx, run); err != nil {
		return store.Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// pick searches for a random term until it finds a status no earlier run
// used.
func (r *Runner) pick(ctx context.Context) (string, twitter.Status, error) {
	for attempt := 1; attempt <= r.opts.RetryLimit; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, r.opts.RetryDelay); err != nil {
				return "", twitter.Status{}, err
			}
		}

		query := sample.Choice(r.opts.Rand, r.opts.Terms)
		statuses, err := r.opts.Searcher.Search(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return "", twitter.Status{}, ctx.Err()
			}
			r.log.Warn("search failed", "query", query, "attempt", attempt, "err", err)
			continue
		}

		fresh, err := r.unused(ctx, statuses)
		if err != nil {
			return "", twitter.Status{}, err
		}
		if len(fresh) == 0 {
			r.log.Warn("no unused statuses", "query", query, "attempt", attempt, "found", len(statuses))
			continue
		}
		return query, sample.Choice(r.opts.Rand, fresh), nil
	}

	return "", twitter.Status{}, fmt.Errorf("%w after %d attempts", internalerr.ErrNoCandidates, r.opts.RetryLimit)
}

func (r *Runner) unused(ctx context.Context, statuses []twitter.Status) ([]twitter.Status, error) {
	var fresh []twitter.Status
	for _, st := range statuses {
		if st.Text == "" {
			continue
		}
		used, err := r.opts.Store.HasStatus(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("check status %d: %w", st.ID, err)
		}
		if !used {
			fresh = append(fresh, st)
		}
	}
	return fresh, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
