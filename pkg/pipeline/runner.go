package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/observability"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/scene"
)

// Packer computes item placements. *engine.Client satisfies it.
type Packer interface {
	Pack(ctx context.Context, items []catalog.Request) (*engine.PackResult, error)
}

// Quoter fetches carrier rates. *engine.Client satisfies it.
type Quoter interface {
	Rates(ctx context.Context, items []catalog.Request) (*engine.RateResult, error)
	ManualRates(ctx context.Context, e parcel.Estimate) (*engine.RateResult, error)
}

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for its engine and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Engine  Packer // nil means estimate-only previews
	Logger  *log.Logger
	Options Options
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(p Packer, logger *log.Logger, opts Options) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Engine: p, Logger: logger, Options: opts}
}

// Estimate aggregates lines with the runner's compression policy. ok is
// false for an empty cart.
func (r *Runner) Estimate(ctx context.Context, lines []catalog.Line) (parcel.Estimate, bool) {
	e, ok := parcel.Aggregate(lines, r.Options.Policy)
	observability.Pipeline().OnEstimate(ctx, e.ItemCount, ok)
	if ok {
		r.Logger.Debug("estimated parcel",
			"length_cm", e.LengthCm, "width_cm", e.WidthCm, "height_cm", e.HeightCm,
			"weight_g", e.WeightG, "items", e.ItemCount)
	}
	return e, ok
}

// Preview runs estimate → pack → scene for lines.
//
// An engine failure is not an error: the result falls back to the estimate
// box and records the failure in Result.Err. Only context cancellation is
// returned as an error.
func (r *Runner) Preview(ctx context.Context, lines []catalog.Line) (*Result, error) {
	res := &Result{}
	res.Estimate, res.HasEstimate = r.Estimate(ctx, lines)
	if !res.HasEstimate {
		res.Scene = r.buildScene(ctx, res, nil)
		return res, nil
	}

	if r.Engine == nil {
		res.Fallback = true
		res.Scene = r.buildScene(ctx, res, nil)
		return res, nil
	}

	start := time.Now()
	packed, err := r.Engine.Pack(ctx, catalog.NewCart(lines...).Requests())
	res.Stats.PackTime = time.Since(start)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		r.Logger.Warn("packing engine failed, using estimate", "err", err)
		res.Fallback, res.Err = true, err
	case len(packed.Placements) == 0:
		r.Logger.Warn("packing engine returned no placements, using estimate")
		res.Fallback = true
		res.Err = stderrors.New("engine returned no placements")
	default:
		if packed.Dimensions.ItemCount > 0 {
			res.Packed = &packed.Dimensions
		}
		res.Scene = r.buildScene(ctx, res, packed.Placements)
		return res, nil
	}
	res.Scene = r.buildScene(ctx, res, nil)
	return res, nil
}

// Placements builds a result straight from engine placements, skipping the
// estimate and pack stages.
func (r *Runner) Placements(ctx context.Context, placements []geom.Placement) *Result {
	res := &Result{}
	res.Scene = r.buildScene(ctx, res, placements)
	return res
}

// Manual builds a result for a hand-entered parcel.
func (r *Runner) Manual(ctx context.Context, e parcel.Estimate) *Result {
	res := &Result{Estimate: e, HasEstimate: e.ItemCount > 0, Fallback: true}
	observability.Pipeline().OnEstimate(ctx, e.ItemCount, res.HasEstimate)
	res.Scene = r.buildScene(ctx, res, nil)
	return res
}

// Rates quotes carrier options for lines. It returns nil without error when
// the engine does not quote rates or the cart is empty.
func (r *Runner) Rates(ctx context.Context, lines []catalog.Line) (*engine.RateResult, error) {
	q, ok := r.Engine.(Quoter)
	if !ok || len(lines) == 0 {
		return nil, nil
	}
	rates, err := q.Rates(ctx, catalog.NewCart(lines...).Requests())
	if err != nil {
		return nil, err
	}
	r.logRates(rates)
	return rates, nil
}

// ManualRates quotes carrier options for a hand-entered parcel.
func (r *Runner) ManualRates(ctx context.Context, e parcel.Estimate) (*engine.RateResult, error) {
	q, ok := r.Engine.(Quoter)
	if !ok {
		return nil, nil
	}
	rates, err := q.ManualRates(ctx, e)
	if err != nil {
		return nil, err
	}
	r.logRates(rates)
	return rates, nil
}

func (r *Runner) logRates(rates *engine.RateResult) {
	best, ok := rates.Best()
	if !ok {
		r.Logger.Debug("quoted rates", "options", len(rates.Options))
		return
	}
	r.Logger.Debug("quoted rates", "options", len(rates.Options),
		"recommended", best.ServiceName, "price_yen", best.PriceYen)
}

// buildScene uses placements when given, else the estimate box.
func (r *Runner) buildScene(ctx context.Context, res *Result, placements []geom.Placement) *scene.Scene {
	start := time.Now()
	var s *scene.Scene
	if placements != nil {
		s = scene.Build(placements, r.Options.Scene)
	} else if res.HasEstimate {
		s = scene.FromEstimate(res.Estimate, r.Options.Scene)
	} else {
		s = scene.Build(nil, r.Options.Scene)
	}
	res.Stats.SceneTime = time.Since(start)
	res.Stats.Placements = len(s.Items)

	observability.Pipeline().OnSceneBuilt(ctx, len(s.Items), s.Scale, res.Fallback, res.Stats.SceneTime)
	r.Logger.Debug("built scene",
		"items", len(s.Items), "scale", s.Scale, "fallback", res.Fallback,
		"duration", res.Stats.SceneTime)
	return s
}
