package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
	"github.com/KaramelBytes/worldpop-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type failingSource struct{ err error }

func (f failingSource) Supply(context.Context, *catalog.Catalog) (*series.Series, error) {
	return nil, f.err
}

// fixedSource returns a hand-built series, standing in for a real loader.
type fixedSource struct{ s *series.Series }

func (f fixedSource) Supply(context.Context, *catalog.Catalog) (*series.Series, error) {
	return f.s, nil
}

type SessionSuite struct {
	suite.Suite
	sess *session.Session
}

func (s *SessionSuite) SetupTest() {
	opt := series.DefaultOptions()
	opt.Seed = 2024
	g, err := series.NewGenerator(opt)
	s.Require().NoError(err)
	sess, err := session.New(context.Background(), g, catalog.MustDefault(), quietLogger)
	s.Require().NoError(err)
	s.sess = sess
}

func (s *SessionSuite) TestNewPrecomputesTables() {
	s.NotEmpty(s.sess.ID)
	s.Len(s.sess.Summaries(), 20)
	s.Len(s.sess.RegionTotals(), 5*15)
	s.Equal(300, s.sess.Series().Len())
}

func (s *SessionSuite) TestViewDefaultSelection() {
	sel := analysis.Selection{Year: 2020, Countries: []string{"China", "India", "United States"}}
	v, err := s.sess.View(context.Background(), sel, analysis.DefaultTopN)
	s.Require().NoError(err)

	s.True(v.YearAvailable)
	s.Equal([]string{"China", "India", "United States"}, v.Countries)
	s.Len(v.Rows, 3)
	s.Len(v.Ranking, 10)
	s.Len(v.Regions, 5)
	s.Len(v.Trend, 3)
	s.Len(v.Pyramid, 3*len(analysis.AgeGroups)*2)
	s.Equal(3, v.Metrics.CountriesDisplayed)
	s.True(v.Metrics.PriorAvailable)

	rep := v.Report("default")
	s.Empty(rep.Warnings)
	s.Contains(rep.Markdown(), "Countries displayed: 3")
}

func (s *SessionSuite) TestViewInvalidYearFailsClosed() {
	v, err := s.sess.View(context.Background(), analysis.Selection{Year: 2023}, 10)
	s.Require().NoError(err)
	s.False(v.YearAvailable)
	s.Empty(v.Rows)
	s.Empty(v.Pyramid)
	s.Contains(v.Report("").Warnings, "year 2023 is not part of the series")
}

func (s *SessionSuite) TestViewEmptySelectionIsNotAnError() {
	v, err := s.sess.View(context.Background(), analysis.Selection{
		Year:      2000,
		Countries: []string{"Germany"},
		Regions:   []catalog.Region{catalog.Asia},
	}, 10)
	s.Require().NoError(err)
	s.Empty(v.Rows)
	s.Zero(v.Metrics.CountriesDisplayed)
	s.Contains(v.Report("").Warnings, "no countries match the current filters")
}

func (s *SessionSuite) TestFirstYearReportsPriorUnavailable() {
	v, err := s.sess.View(context.Background(), analysis.Selection{Year: 1950}, 10)
	s.Require().NoError(err)
	s.False(v.Metrics.PriorAvailable)
	s.Contains(v.Report("").Warnings, "no data for 1945; population change unavailable")
}

func (s *SessionSuite) TestNewerViewSupersedesOlder() {
	first, err := s.sess.View(context.Background(), analysis.Selection{Year: 2000}, 10)
	s.Require().NoError(err)
	s.True(s.sess.IsCurrent(first))

	second, err := s.sess.View(context.Background(), analysis.Selection{Year: 2005}, 10)
	s.Require().NoError(err)
	s.False(s.sess.IsCurrent(first))
	s.True(s.sess.IsCurrent(second))
	s.Greater(second.Seq, first.Seq)
	s.False(s.sess.IsCurrent(nil))
}

func (s *SessionSuite) TestCancelledViewIsDropped() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := s.sess.View(ctx, analysis.Selection{Year: 2000}, 10)
	s.ErrorIs(err, context.Canceled)
	s.Nil(v)
}

func (s *SessionSuite) TestViewsAreRepeatable() {
	sel := analysis.Selection{Year: 1990, Regions: []catalog.Region{catalog.Africa}}
	a, err := s.sess.View(context.Background(), sel, 5)
	s.Require().NoError(err)
	b, err := s.sess.View(context.Background(), sel, 5)
	s.Require().NoError(err)
	s.Equal(a.Rows, b.Rows)
	s.Equal(a.Metrics, b.Metrics)
	s.Equal(a.Ranking, b.Ranking)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func TestNew_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := session.New(context.Background(), failingSource{err: boom}, catalog.MustDefault(), quietLogger)
	assert.ErrorIs(t, err, boom)

	_, err = session.New(context.Background(), nil, catalog.MustDefault(), quietLogger)
	assert.Error(t, err)
}

func TestNew_AcceptsAnySource(t *testing.T) {
	s, err := series.NewSeries([]int{2000, 2005}, []series.Observation{
		{Country: "X", Year: 2000, Population: 10, Region: catalog.Other},
		{Country: "X", Year: 2005, Population: 15, Region: catalog.Other},
	}, nil)
	require.NoError(t, err)
	sess, err := session.New(context.Background(), fixedSource{s: s}, catalog.MustDefault(), nil)
	require.NoError(t, err)

	v, err := sess.View(context.Background(), analysis.Selection{Year: 2005}, 10)
	require.NoError(t, err)
	assert.Equal(t, []analysis.Row{{Country: "X", Region: catalog.Other, Population: 15}}, v.Rows)
	assert.Equal(t, int64(5), v.Metrics.Delta)
	assert.InDelta(t, 50.0, v.Metrics.AverageGrowth, 1e-9)
}
