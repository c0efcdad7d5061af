package recommend

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/trafficscope/trafficscope/pkg/action"
	"github.com/trafficscope/trafficscope/pkg/scoring"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

// Engine chains the scorer, optimizer and composer. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	optimizer *action.Optimizer
	clock     clockwork.Clock
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog makes the optimizer draw from catalog instead of the default.
func WithCatalog(catalog *action.Catalog) Option {
	return func(e *Engine) { e.optimizer = action.NewOptimizer(catalog) }
}

// WithClock sets the time source used to stamp runs.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger for per-segment debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine over the default catalog and the real clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		optimizer: action.NewOptimizer(nil),
		clock:     clockwork.NewRealClock(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze scores one segment and recommends an action for it.
func (e *Engine) Analyze(rec segment.Record) Report {
	sev := scoring.Score(rec)
	sel := e.optimizer.Select(sev.Tier, sev.Class)

	e.logger.Debug("segment analysed",
		"segment", rec.Name,
		"score", sev.Score,
		"tier", sev.Tier.String(),
		"action", sel.Action.Name,
	)
	return Compose(rec, sev, sel)
}

// Run is the result of analysing a batch of segments.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Reports   []Report  `json:"reports"`
}

// AnalyzeAll analyses every record independently, preserving input order.
func (e *Engine) AnalyzeAll(recs []segment.Record) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: e.clock.Now().UTC(),
		Reports:   make([]Report, 0, len(recs)),
	}
	for _, rec := range recs {
		run.Reports = append(run.Reports, e.Analyze(rec))
	}
	return run
}

// Summary aggregates a run for headline display.
type Summary struct {
	Total     int                  `json:"total"`
	ByTier    map[scoring.Tier]int `json:"by_tier"`
	TotalCost decimal.Decimal      `json:"total_cost"`
	MaxScore  float64              `json:"max_score"`
}

// Summary counts reports per tier and totals the recommended spend.
func (r *Run) Summary() Summary {
	s := Summary{
		Total:     len(r.Reports),
		ByTier:    make(map[scoring.Tier]int, len(scoring.Tiers)),
		TotalCost: decimal.Zero,
	}
	for _, t := range scoring.Tiers {
		s.ByTier[t] = 0
	}
	for i, rep := range r.Reports {
		s.ByTier[rep.Tier]++
		s.TotalCost = s.TotalCost.Add(rep.RecommendedAction.Cost)
		if i == 0 || rep.SeverityScore > s.MaxScore {
			s.MaxScore = rep.SeverityScore
		}
	}
	return s
}

// Find returns the report for the named segment.
func (r *Run) Find(name string) (Report, bool) {
	for _, rep := range r.Reports {
		if rep.SegmentName == name {
			return rep, true
		}
	}
	return Report{}, false
}
