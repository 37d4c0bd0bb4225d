package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/parcel"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient("ftp://engine", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewClient(ftp) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestPack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathDimensions {
			t.Errorf("got %s %s, want POST %s", r.Method, r.URL.Path, PathDimensions)
		}
		var req CartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Items) != 1 || req.Items[0].ProductID != 101 || req.Items[0].Quantity != 2 {
			t.Errorf("request items = %+v", req.Items)
		}
		w.Write([]byte(`{
			"dimensions": {"lengthCm": 15, "widthCm": 10.5, "heightCm": 3, "weightG": 300, "itemCount": 2},
			"placements": [
				{"name": "novel", "position": {"x": 0, "y": 0, "z": 0}, "size": {"width": 150, "depth": 105, "height": 15}, "color": "#fff"},
				{"name": "novel", "x": 0, "y": 0, "z": 15, "width": 150, "depth": 105, "height": 15, "color": "#eee"}
			]
		}`))
	})

	res, err := c.Pack(context.Background(), []catalog.Request{{ProductID: 101, Quantity: 2}})
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if res.Dimensions.ItemCount != 2 || res.Dimensions.WeightG != 300 {
		t.Errorf("Dimensions = %+v", res.Dimensions)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("len(Placements) = %d, want 2", len(res.Placements))
	}
	flat := res.Placements[1]
	if flat.Position.Z != 15 || flat.Size.Width != 150 || flat.Size.Depth != 105 || flat.Color != "#eee" {
		t.Errorf("flat placement decoded as %+v", flat)
	}
}

func TestPackEmptyIsLocal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("engine should not be called for an empty cart")
	})
	res, err := c.Pack(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Placements) != 0 {
		t.Errorf("Placements = %v, want none", res.Placements)
	}
}

func TestRates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathCart {
			t.Errorf("path = %s, want %s", r.URL.Path, PathCart)
		}
		w.Write([]byte(`{
			"dimensions": {"lengthCm": 30, "widthCm": 25, "heightCm": 6, "weightG": 400, "itemCount": 2},
			"recommended": {"id": 3, "serviceName": "Yu-Packet", "companyName": "Japan Post", "priceYen": 250, "recommended": true},
			"options": [
				{"id": 1, "serviceName": "Click Post", "companyName": "Japan Post", "priceYen": 185, "hasTracking": true},
				{"id": 3, "serviceName": "Yu-Packet", "companyName": "Japan Post", "priceYen": 250, "recommended": true}
			]
		}`))
	})

	res, err := c.Rates(context.Background(), []catalog.Request{{ProductID: 301, Quantity: 2}})
	if err != nil {
		t.Fatalf("Rates() error: %v", err)
	}
	if !res.Recommended {
		t.Error("Recommended = false, want true")
	}
	if len(res.Options) != 2 {
		t.Errorf("len(Options) = %d, want 2 (recommended already listed)", len(res.Options))
	}
	best, ok := res.Best()
	if !ok || best.ID != 3 {
		t.Errorf("Best() = %+v, %v; want id 3", best, ok)
	}
}

func TestRateResultRecommendedForms(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantRec     bool
		wantOptions int
		wantBest    int // 0 when Best should find nothing
	}{
		{"bool true", `{"recommended": true, "options": [{"id": 1, "recommended": true}]}`, true, 1, 1},
		{"bool false", `{"recommended": false, "options": []}`, false, 0, 0},
		{"null", `{"recommended": null}`, false, 0, 0},
		{"missing", `{}`, false, 0, 0},
		{"object not in options", `{"recommended": {"id": 9}, "options": [{"id": 1}]}`, true, 2, 9},
		{"object already in options", `{"recommended": {"id": 2, "priceYen": 520}, "options": [{"id": 1}, {"id": 2}]}`, true, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RateResult
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatal(err)
			}
			if r.Recommended != tt.wantRec {
				t.Errorf("Recommended = %v, want %v", r.Recommended, tt.wantRec)
			}
			if len(r.Options) != tt.wantOptions {
				t.Errorf("len(Options) = %d, want %d", len(r.Options), tt.wantOptions)
			}
			best, ok := r.Best()
			if ok != (tt.wantBest != 0) || best.ID != tt.wantBest {
				t.Errorf("Best() = %+v, %v; want id %d", best, ok, tt.wantBest)
			}
		})
	}
}

func TestManualRates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req ManualRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if r.URL.Path != PathManual || req.LengthCm != 30 || req.WeightG != 500 {
			t.Errorf("got %s %+v", r.URL.Path, req)
		}
		w.Write([]byte(`{"dimensions": {"lengthCm": 30, "widthCm": 20, "heightCm": 10, "weightG": 500, "itemCount": 1}, "options": []}`))
	})
	e, _ := parcel.Manual(30, 20, 10, 500)
	res, err := c.ManualRates(context.Background(), e)
	if err != nil {
		t.Fatalf("ManualRates() error: %v", err)
	}
	if res.Dimensions != e {
		t.Errorf("Dimensions = %+v, want %+v", res.Dimensions, e)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.Code
	}{
		{"bad request", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound},
		{"server error", http.StatusInternalServerError, errors.ErrCodeUnavailable},
		{"unavailable", http.StatusServiceUnavailable, errors.ErrCodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})
			_, err := c.Pack(context.Background(), []catalog.Request{{ProductID: 1, Quantity: 1}})
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("error code = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestUnreachableEngine(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Pack(context.Background(), []catalog.Request{{ProductID: 1, Quantity: 1}})
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNetwork)
	}
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Pack(ctx, []catalog.Request{{ProductID: 1, Quantity: 1}})
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeTimeout)
	}
}

func TestMalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"placements": [`))
	})
	_, err := c.Pack(context.Background(), []catalog.Request{{ProductID: 1, Quantity: 1}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestDecodePlacements(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"empty", "", 0},
		{"array", `[{"position": {"x": 1, "y": 2, "z": 3}, "size": {"width": 4, "depth": 5, "height": 6}}]`, 1},
		{"pack result", `{"placements": [{"x": 0, "width": 10}, {"x": 10, "width": 10}]}`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePlacements([]byte(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := DecodePlacements([]byte("[{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DecodePlacements(garbage) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker
	if tr.Accept(0) {
		t.Error("Accept(0) = true before any request")
	}
	first := tr.Begin()
	if !tr.Accept(first) {
		t.Error("Accept(first) = false while it is the latest")
	}
	second := tr.Begin()
	if tr.Accept(first) {
		t.Error("Accept(first) = true after a newer request began")
	}
	if !tr.Accept(second) {
		t.Error("Accept(second) = false")
	}
}

func TestTrackerConcurrent(t *testing.T) {
	var tr Tracker
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Begin()
		}()
	}
	wg.Wait()
	if got := tr.Latest(); got != 50 {
		t.Errorf("Latest() = %d, want 50", got)
	}
	accepted := 0
	for seq := uint64(1); seq <= 50; seq++ {
		if tr.Accept(seq) {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("%d sequences accepted, want exactly 1", accepted)
	}
}
