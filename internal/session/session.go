// Package session holds the population series generated for one process and
// recomputes filtered views of it on demand.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Session owns the series for its lifetime. Everything reachable from it is
// read-only after New returns, so views may be computed concurrently.
type Session struct {
	ID        string
	CreatedAt time.Time

	catalog      *catalog.Catalog
	series       *series.Series
	summaries    []analysis.GrowthSummary
	regionTotals []analysis.RegionTotal

	log *slog.Logger
	seq atomic.Uint64
}

// New supplies the series from src and precomputes the derived tables that
// do not depend on user selections.
func New(ctx context.Context, src series.Source, cat *catalog.Catalog, logger *slog.Logger) (*Session, error) {
	if src == nil {
		return nil, errors.New("session: nil source")
	}
	if cat == nil {
		return nil, errors.New("session: nil catalog")
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	start := time.Now()
	s, err := src.Supply(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("supply series: %w", err)
	}
	sess := &Session{
		ID:           id,
		CreatedAt:    start,
		catalog:      cat,
		series:       s,
		summaries:    analysis.Summarize(s),
		regionTotals: analysis.RegionTotals(s),
		log:          logger.With("session", id),
	}
	sess.log.Debug("series generated",
		"countries", len(s.Countries()),
		"years", len(s.Years()),
		"observations", s.Len(),
		"elapsed", time.Since(start))
	return sess, nil
}

// Catalog returns the catalog the series was generated from.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Series returns the session's series.
func (s *Session) Series() *series.Series { return s.series }

// Summaries returns a copy of the per-country growth summaries.
func (s *Session) Summaries() []analysis.GrowthSummary {
	out := make([]analysis.GrowthSummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// RegionTotals returns a copy of the region-by-year totals.
func (s *Session) RegionTotals() []analysis.RegionTotal {
	out := make([]analysis.RegionTotal, len(s.regionTotals))
	copy(out, s.regionTotals)
	return out
}

// View is the result of one user interaction.
type View struct {
	// Seq increases with every View call; see Session.IsCurrent.
	Seq           uint64
	Selection     analysis.Selection
	YearAvailable bool
	Countries     []string
	Rows          []analysis.Row
	Metrics       analysis.Metrics
	Ranking       []analysis.GrowthRank
	Regions       []analysis.RegionTotal
	Trend         []analysis.TrendLine
	Pyramid       []analysis.PyramidBar
}

// View recomputes every selection-dependent table. The pieces are pure
// functions of the immutable series and run concurrently. A cancelled ctx
// drops the view and returns the context error.
func (s *Session) View(ctx context.Context, sel analysis.Selection, topN int) (*View, error) {
	v := &View{
		Seq:           s.seq.Add(1),
		Selection:     sel,
		YearAvailable: s.series.HasYear(sel.Year),
	}
	v.Countries = analysis.ResolveCountries(s.series, sel.Countries, sel.Regions)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v.Rows = analysis.Select(s.series, sel)
		return gctx.Err()
	})
	g.Go(func() error {
		v.Metrics = analysis.ComputeMetrics(s.series, s.summaries, sel)
		return gctx.Err()
	})
	g.Go(func() error {
		v.Ranking = analysis.TopGrowth(s.summaries, topN)
		v.Regions = analysis.RegionTotalsForYear(s.regionTotals, sel.Year)
		return gctx.Err()
	})
	g.Go(func() error {
		v.Trend = analysis.Trend(s.series, v.Countries)
		v.Pyramid = analysis.Pyramid(s.series, s.catalog, sel.Year, v.Countries)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		s.log.Debug("view dropped", "seq", v.Seq, "err", err)
		return nil, err
	}
	if !v.YearAvailable {
		s.log.Warn("year not in series", "year", sel.Year, "first", s.series.FirstYear(), "last", s.series.LastYear())
	}
	return v, nil
}

// IsCurrent reports whether v is the most recent view; older views were
// superseded by a later interaction and can be discarded.
func (s *Session) IsCurrent(v *View) bool {
	return v != nil && v.Seq == s.seq.Load()
}

// Report builds the text report for a view.
func (v *View) Report(name string) *analysis.Report {
	rep := &analysis.Report{
		Name:    name,
		Metrics: v.Metrics,
		Rows:    v.Rows,
		Regions: v.Regions,
		Ranking: v.Ranking,
	}
	if !v.YearAvailable {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("year %d is not part of the series", v.Selection.Year))
	} else if len(v.Rows) == 0 {
		rep.Warnings = append(rep.Warnings, "no countries match the current filters")
	}
	if !v.Metrics.PriorAvailable && v.YearAvailable {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("no data for %d; population change unavailable", v.Metrics.PriorYear))
	}
	return rep
}
