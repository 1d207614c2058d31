package series

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
)

// Options controls synthetic series generation.
type Options struct {
	// Years is the year sequence; nil means DefaultYears().
	Years []int
	// Growth rates are drawn once per country from [GrowthMin, GrowthMax].
	GrowthMin float64
	GrowthMax float64
	// Multiplicative noise per observation is drawn from [NoiseMin, NoiseMax].
	NoiseMin float64
	NoiseMax float64
	// Seed initialises the random source when Rand is nil. 0 seeds from the clock.
	Seed int64
	// Rand overrides Seed. It is not safe for concurrent use.
	Rand *rand.Rand
}

// DefaultOptions returns the standard generator settings.
func DefaultOptions() Options {
	return Options{
		Years:     DefaultYears(),
		GrowthMin: catalog.MinGrowthRate,
		GrowthMax: catalog.MaxGrowthRate,
		NoiseMin:  0.95,
		NoiseMax:  1.05,
	}
}

// Validate checks that bounds are ordered and positive, and that the growth
// range stays within [catalog.MinGrowthRate, catalog.MaxGrowthRate].
func (o Options) Validate() error {
	if o.Years != nil && len(o.Years) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, ErrEmptyYears)
	}
	if o.GrowthMin < catalog.MinGrowthRate || o.GrowthMax > catalog.MaxGrowthRate || o.GrowthMax < o.GrowthMin {
		return fmt.Errorf("%w: growth range [%g, %g]", ErrInvalidOptions, o.GrowthMin, o.GrowthMax)
	}
	if o.NoiseMin <= 0 || o.NoiseMax < o.NoiseMin {
		return fmt.Errorf("%w: noise range [%g, %g]", ErrInvalidOptions, o.NoiseMin, o.NoiseMax)
	}
	return nil
}

// Generator produces synthetic series with a per-country compound growth
// model and multiplicative noise.
type Generator struct {
	opt Options
	rng *rand.Rand
}

// NewGenerator validates options and resolves the random source.
func NewGenerator(opt Options) (*Generator, error) {
	if opt.Years == nil {
		opt.Years = DefaultYears()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	opt.Years = slices.Clone(opt.Years)
	slices.Sort(opt.Years)
	opt.Years = slices.Compact(opt.Years)
	rng := opt.Rand
	if rng == nil {
		seed := opt.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &Generator{opt: opt, rng: rng}, nil
}

// Supply implements Source.
func (g *Generator) Supply(ctx context.Context, c *catalog.Catalog) (*Series, error) {
	return g.Generate(ctx, c)
}

// Generate draws one observation per (country, year), in catalog order then
// year order. A profile's preassigned growth rate is used as-is; otherwise a
// rate is drawn once for the country before any noise.
func (g *Generator) Generate(ctx context.Context, c *catalog.Catalog) (*Series, error) {
	years := g.opt.Years
	first := years[0]
	profiles := c.Profiles()
	obs := make([]Observation, 0, len(profiles)*len(years))
	rates := make(map[string]float64, len(profiles))
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rate := p.GrowthRate
		if rate == 0 {
			rate = g.uniform(g.opt.GrowthMin, g.opt.GrowthMax)
		}
		rates[p.Name] = rate
		base := float64(p.BasePopulation)
		for _, y := range years {
			raw := base * math.Pow(1+rate, float64(y-first))
			noise := g.uniform(g.opt.NoiseMin, g.opt.NoiseMax)
			pop := int64(math.Round(raw * noise))
			if pop < 1 {
				pop = 1
			}
			obs = append(obs, Observation{
				Country:    p.Name,
				Year:       y,
				Population: pop,
				Region:     c.Region(p.Name),
			})
		}
	}
	return NewSeries(years, obs, rates)
}

// uniform draws from [lo, hi]; lo == hi returns lo without consuming randomness.
func (g *Generator) uniform(lo, hi float64) float64 {
	if hi == lo {
		return lo
	}
	return lo + (hi-lo)*g.rng.Float64()
}
