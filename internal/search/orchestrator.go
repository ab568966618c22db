// internal/search/orchestrator.go
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gitmind-explorer/internal/insight"
	"gitmind-explorer/internal/model"
)

const recordTimeout = 5 * time.Second

// ProfileFetcher looks up the account behind a handle.
type ProfileFetcher interface {
	GetAccount(ctx context.Context, handle string) (*model.Account, error)
}

// RepositoryFetcher lists the most recently updated repositories of a handle.
type RepositoryFetcher interface {
	ListRecentRepositories(ctx context.Context, handle string) ([]model.RepositorySummary, error)
}

// InsightGenerator produces the personality summary. It must not fail.
type InsightGenerator interface {
	Generate(ctx context.Context, account *model.Account, repos []model.RepositorySummary) insight.Outcome
}

// Recorder receives every search that settles while still current.
type Recorder interface {
	RecordSearch(ctx context.Context, rec Record) error
}

// Record summarizes a settled search.
type Record struct {
	Handle          string
	Generation      uint64
	Phase           Phase
	ErrorKind       ErrorKind
	RepositoryCount int
	InsightStatus   string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder sends settled searches to r.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// Orchestrator sequences profile, repository and insight lookups for one
// user and owns the resulting State. Every search is tagged with a
// generation; results from a superseded generation are dropped.
type Orchestrator struct {
	profiles ProfileFetcher
	repos    RepositoryFetcher
	insights InsightGenerator
	recorder Recorder
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// NewOrchestrator creates an idle Orchestrator.
func NewOrchestrator(profiles ProfileFetcher, repos RepositoryFetcher, insights InsightGenerator, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		profiles: profiles,
		repos:    repos,
		insights: insights,
		logger:   logger,
		state:    State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run tracks one submitted search.
type Run struct {
	Generation uint64
	Handle     string

	loaded chan struct{}
	done   chan struct{}
}

// Loaded is closed once the account lookup and repository listing have settled.
func (r *Run) Loaded() <-chan struct{} { return r.loaded }

// Done is closed once the whole chain, insight included, has settled.
func (r *Run) Done() <-chan struct{} { return r.done }

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Submit starts a search for handle and returns immediately. A blank handle
// is ignored and yields nil. The previous search, if any, is cancelled and
// its pending results are discarded. The search is not bound to ctx's
// cancellation so it can outlive the submitting request; use Close to stop it.
func (o *Orchestrator) Submit(ctx context.Context, handle string) *Run {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.generation++
	gen := o.generation
	o.cancel = cancel
	o.state = State{
		Generation:   gen,
		Query:        handle,
		Phase:        PhaseLoading,
		Loading:      true,
		Repositories: []model.RepositorySummary{},
	}
	o.mu.Unlock()

	run := &Run{
		Generation: gen,
		Handle:     handle,
		loaded:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	go o.run(runCtx, run)
	return run
}

// Close cancels the in-flight search, if any. Its pending results are
// discarded and it is not recorded.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) run(ctx context.Context, run *Run) {
	defer close(run.done)
	loadedOnce := sync.OnceFunc(func() { close(run.loaded) })
	defer loadedOnce()

	started := time.Now()
	logger := o.logger.With("handle", run.Handle, "generation", run.Generation)
	logger.Info("Starting search")

	account, err := o.profiles.GetAccount(ctx, run.Handle)
	if err != nil {
		logger.Warn("Account lookup failed", "error", err)
		if o.fail(run.Generation, err) {
			o.record(ctx, Record{
				Handle:     run.Handle,
				Generation: run.Generation,
				Phase:      PhaseError,
				ErrorKind:  classify(err),
				StartedAt:  started,
				FinishedAt: time.Now(),
			})
		}
		return
	}

	repos, err := o.repos.ListRecentRepositories(ctx, run.Handle)
	warning := ""
	if err != nil {
		logger.Warn("Repository listing degraded, continuing with none", "error", err)
		warning = err.Error()
		repos = nil
	}
	if repos == nil {
		repos = []model.RepositorySummary{}
	}

	if !o.load(run.Generation, account, repos, warning) {
		logger.Debug("Discarding stale profile")
		return
	}
	loadedOnce()
	logger.Info("Profile loaded", "repositories", len(repos))

	outcome := o.insights.Generate(ctx, account, repos)
	if !o.settleInsight(run.Generation, outcome) {
		logger.Debug("Discarding stale insight")
		return
	}
	logger.Info("Search settled", "insight_status", outcome.Status.String())

	o.record(ctx, Record{
		Handle:          run.Handle,
		Generation:      run.Generation,
		Phase:           PhaseLoaded,
		RepositoryCount: len(repos),
		InsightStatus:   outcome.Status.String(),
		StartedAt:       started,
		FinishedAt:      time.Now(),
	})
}

// fail moves a current search from Loading to Error.
func (o *Orchestrator) fail(gen uint64, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	o.state.Phase = PhaseError
	o.state.Loading = false
	o.state.Analyzing = false
	o.state.Account = nil
	o.state.Repositories = []model.RepositorySummary{}
	o.state.Insight = nil
	o.state.Error = ErrorMessage
	o.state.ErrorKind = classify(err)
	return true
}

// load moves a current search from Loading to Loaded with the insight pending.
func (o *Orchestrator) load(gen uint64, account *model.Account, repos []model.RepositorySummary, warning string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	o.state.Phase = PhaseLoaded
	o.state.Loading = false
	o.state.Analyzing = true
	o.state.Account = account
	o.state.Repositories = repos
	if warning != "" {
		o.state.Warnings = append(o.state.Warnings, warning)
	}
	return true
}

// settleInsight stores the insight outcome and clears the analyzing flag.
func (o *Orchestrator) settleInsight(gen uint64, outcome insight.Outcome) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	o.state.Analyzing = false
	o.state.Insight = &outcome
	return true
}

func (o *Orchestrator) record(ctx context.Context, rec Record) {
	if o.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := o.recorder.RecordSearch(ctx, rec); err != nil {
		o.logger.Error("Failed to record search", "handle", rec.Handle, "error", err)
	}
}
