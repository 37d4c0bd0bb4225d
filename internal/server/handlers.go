package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/pipeline"
	"github.com/matzehuels/parcelview/pkg/reference"
)

// =============================================================================
// Catalog
// =============================================================================

type categoryInfo struct {
	Name  catalog.Category `json:"name"`
	Label string           `json:"label"`
	Count int              `json:"count"`
}

type tierInfo struct {
	// UpperCm is null for the open-ended last tier.
	UpperCm *float64        `json:"upperCm"`
	Model   reference.Model `json:"model"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"version": s.version,
		"engine":  s.runner.Engine != nil,
	}, http.StatusOK)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, r, errors.New(errors.ErrCodeUnavailable, "no catalog loaded"))
		return
	}
	var cat catalog.Category
	if q := r.URL.Query().Get("category"); q != "" {
		c, err := catalog.ParseCategory(q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cat = c
	}
	items := s.catalog.Items(cat)
	if q := r.URL.Query().Get("q"); q != "" {
		items = filterItems(s.catalog.Search(q), cat)
	}
	writeJSON(w, map[string]any{"items": items}, http.StatusOK)
}

func filterItems(items []catalog.Item, cat catalog.Category) []catalog.Item {
	if cat == "" {
		return items
	}
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, r, errors.New(errors.ErrCodeUnavailable, "no catalog loaded"))
		return
	}
	cats := s.catalog.Categories()
	out := make([]categoryInfo, len(cats))
	for i, c := range cats {
		out[i] = categoryInfo{Name: c, Label: c.Label(), Count: len(s.catalog.Items(c))}
	}
	writeJSON(w, map[string]any{"categories": out}, http.StatusOK)
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	out := make([]tierInfo, len(reference.Tiers))
	for i, t := range reference.Tiers {
		out[i].Model = t.Model
		if !math.IsInf(t.UpperCm, 1) {
			upper := t.UpperCm
			out[i].UpperCm = &upper
		}
	}
	writeJSON(w, map[string]any{"tiers": out}, http.StatusOK)
}

// =============================================================================
// Preview
// =============================================================================

type cartBody struct {
	Items []catalog.Request `json:"items"`
}

type estimateResponse struct {
	Estimate *parcel.Estimate `json:"estimate"`
}

type previewResponse struct {
	Estimate *parcel.Estimate   `json:"estimate"`
	Packed   *parcel.Estimate   `json:"packed,omitempty"`
	Fallback bool               `json:"fallback"`
	Error    *errorBody         `json:"error,omitempty"`
	Rates    *engine.RateResult `json:"rates,omitempty"`
	Scene    json.RawMessage    `json:"scene"`
}

// quoteFunc fetches carrier rates for a JSON preview.
type quoteFunc func(ctx context.Context) (*engine.RateResult, error)

func (s *Server) resolveCart(w http.ResponseWriter, r *http.Request) ([]catalog.Line, error) {
	var body cartBody
	if err := decode(w, r, &body); err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return nil, errors.New(errors.ErrCodeUnavailable, "no catalog loaded")
	}
	return s.catalog.Resolve(body.Items)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	lines, err := s.resolveCart(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var resp estimateResponse
	if e, ok := s.runner.Estimate(r.Context(), lines); ok {
		resp.Estimate = &e
	}
	writeJSON(w, resp, http.StatusOK)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	placements, err := engine.DecodePlacements(data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.respond(w, r, s.runner.Placements(r.Context(), placements), nil)
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LengthCm float64 `json:"lengthCm"`
		WidthCm  float64 `json:"widthCm"`
		HeightCm float64 `json:"heightCm"`
		WeightG  float64 `json:"weightG"`
	}
	if err := decode(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := parcel.Manual(body.LengthCm, body.WidthCm, body.HeightCm, body.WeightG)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.respond(w, r, s.runner.Manual(r.Context(), e), func(ctx context.Context) (*engine.RateResult, error) {
		return s.runner.ManualRates(ctx, e)
	})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	lines, err := s.resolveCart(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Preview(r.Context(), lines)
	if err != nil {
		if r.Context().Err() != nil {
			err = errors.Wrap(errors.ErrCodeTimeout, err, "request canceled")
		}
		writeError(w, r, err)
		return
	}
	s.respond(w, r, res, func(ctx context.Context) (*engine.RateResult, error) {
		return s.runner.Rates(ctx, lines)
	})
}

// respond writes res as JSON, or as an image when ?format= asks for one.
// JSON responses carry the rates from quote when it is non-nil. A rate
// failure is logged and leaves rates out.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, res *pipeline.Result, quote quoteFunc) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), res, []string{format})
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := artifacts[format]

	switch format {
	case pipeline.FormatSVG:
		writeRaw(w, "image/svg+xml", data)
		return
	case pipeline.FormatPNG:
		writeRaw(w, "image/png", data)
		return
	case pipeline.FormatPDF:
		writeRaw(w, "application/pdf", data)
		return
	}

	resp := previewResponse{Fallback: res.Fallback, Scene: data, Packed: res.Packed}
	if res.HasEstimate {
		e := res.Estimate
		resp.Estimate = &e
	}
	if res.Err != nil {
		code := errors.GetCode(res.Err)
		if code == "" {
			code = errors.ErrCodeUnavailable
		}
		resp.Error = &errorBody{Code: code, Message: errors.UserMessage(res.Err)}
	}
	if quote != nil {
		rates, err := quote(r.Context())
		if err != nil {
			s.logger.Warn("rate engine failed", "path", r.URL.Path, "err", err)
		}
		resp.Rates = rates
	}
	writeJSON(w, resp, http.StatusOK)
}
