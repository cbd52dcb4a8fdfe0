package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

type stubLister struct {
	ids   []string
	calls int
}

func (s *stubLister) ListInstruments(ctx context.Context, doc *models.CacheDocument, now time.Time) []string {
	s.calls++
	return s.ids
}

type stubFetcher struct {
	result map[string]models.Ticker
	calls  int
}

func (s *stubFetcher) FetchTickers(ctx context.Context, productIDs []string) map[string]models.Ticker {
	s.calls++
	out := make(map[string]models.Ticker, len(s.result))
	for k, v := range s.result {
		out[k] = v
	}
	return out
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func snapshotAt(at time.Time, price string) *models.Snapshot {
	return &models.Snapshot{
		CapturedAt: at,
		Data:       map[string]models.Ticker{"BTC-USD": {Price: price, Volume24h: "1"}},
	}
}

func newTestRotator(fetched map[string]models.Ticker) (*SnapshotRotator, *stubLister, *stubFetcher) {
	lister := &stubLister{ids: []string{"BTC-USD"}}
	fetcher := &stubFetcher{result: fetched}
	return NewSnapshotRotator(lister, fetcher, config.DefaultMovers()), lister, fetcher
}

func mustJSON(t *testing.T, doc models.CacheDocument) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(b)
}

func TestRefresh_StalenessGating(t *testing.T) {
	rotator, lister, fetcher := newTestRotator(map[string]models.Ticker{"BTC-USD": {Price: "200"}})
	doc := models.CacheDocument{
		Latest:          snapshotAt(t0.Add(-10*time.Second), "100"),
		ThreeMinutesAgo: snapshotAt(t0.Add(-5*time.Minute), "90"),
		OneHourAgo:      snapshotAt(t0.Add(-2*time.Hour), "80"),
	}
	before := mustJSON(t, doc)

	got, changed := rotator.Refresh(context.Background(), doc, t0)
	if changed {
		t.Error("fresh document must not change")
	}
	if lister.calls != 0 || fetcher.calls != 0 {
		t.Errorf("no upstream calls expected, lister=%d fetcher=%d", lister.calls, fetcher.calls)
	}
	if mustJSON(t, got) != before {
		t.Error("document must be byte-identical")
	}

	// Justo en el límite del TTL sigue siendo fresco
	doc.Latest.CapturedAt = t0.Add(-45 * time.Second)
	if _, changed := rotator.Refresh(context.Background(), doc, t0); changed {
		t.Error("age equal to TTL must not refresh")
	}
}

func TestRefresh_FirstRunBootstrap(t *testing.T) {
	rotator, _, _ := newTestRotator(map[string]models.Ticker{"BTC-USD": {Price: "100"}})

	got, changed := rotator.Refresh(context.Background(), models.CacheDocument{}, t0)
	if !changed {
		t.Fatal("empty document must refresh")
	}
	if got.Latest == nil || !got.Latest.CapturedAt.Equal(t0) {
		t.Fatalf("latest not committed: %+v", got.Latest)
	}
	if got.ThreeMinutesAgo != got.Latest || got.OneHourAgo != got.Latest {
		t.Error("historical slots must be bootstrapped from latest")
	}
}

func TestRefresh_FirstRunTotalFailure(t *testing.T) {
	rotator, _, _ := newTestRotator(nil)

	got, changed := rotator.Refresh(context.Background(), models.CacheDocument{}, t0)
	if !changed {
		t.Fatal("stale document must be processed")
	}
	if got.Latest != nil || got.ThreeMinutesAgo != nil || got.OneHourAgo != nil {
		t.Errorf("nothing to commit, got %+v", got)
	}
}

func TestRefresh_TotalFailurePreservesLatest(t *testing.T) {
	rotator, _, fetcher := newTestRotator(map[string]models.Ticker{})
	latest := snapshotAt(t0.Add(-time.Minute), "100")
	doc := models.CacheDocument{
		Latest:          latest,
		ThreeMinutesAgo: snapshotAt(t0.Add(-2*time.Minute), "95"),
		OneHourAgo:      snapshotAt(t0.Add(-30*time.Minute), "90"),
	}

	got, _ := rotator.Refresh(context.Background(), doc, t0)
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}
	if got.Latest != latest {
		t.Errorf("latest must be untouched, got %+v", got.Latest)
	}
}

func TestRefresh_PartialFetchCommits(t *testing.T) {
	rotator, _, _ := newTestRotator(map[string]models.Ticker{
		"BTC-USD": {Price: "101"},
		"ETH-USD": {Price: "10"},
	})
	doc := models.CacheDocument{Latest: snapshotAt(t0.Add(-time.Minute), "100")}

	got, _ := rotator.Refresh(context.Background(), doc, t0)
	if got.Latest.Len() != 2 || !got.Latest.CapturedAt.Equal(t0) {
		t.Errorf("unexpected latest: %+v", got.Latest)
	}
}

func TestRefresh_HistoricalAging(t *testing.T) {
	tests := []struct {
		name          string
		threeMinAge   time.Duration
		oneHourAge    time.Duration
		wantThreeAged bool
		wantHourAged  bool
	}{
		{"both windows open", 2 * time.Minute, 30 * time.Minute, false, false},
		{"three minute window elapsed", 181 * time.Second, 30 * time.Minute, true, false},
		{"exactly three minutes", 180 * time.Second, 30 * time.Minute, false, false},
		{"one hour window elapsed", 2 * time.Minute, 3601 * time.Second, false, true},
		{"both elapsed", 20 * time.Minute, 2 * time.Hour, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotator, _, _ := newTestRotator(map[string]models.Ticker{"BTC-USD": {Price: "120"}})
			oldLatest := snapshotAt(t0.Add(-time.Minute), "110")
			threeMin := snapshotAt(t0.Add(-tt.threeMinAge), "100")
			oneHour := snapshotAt(t0.Add(-tt.oneHourAge), "90")
			doc := models.CacheDocument{Latest: oldLatest, ThreeMinutesAgo: threeMin, OneHourAgo: oneHour}

			got, _ := rotator.Refresh(context.Background(), doc, t0)

			if aged := got.ThreeMinutesAgo == oldLatest; aged != tt.wantThreeAged {
				t.Errorf("three_minutes_ago aged = %v, want %v", aged, tt.wantThreeAged)
			}
			if !tt.wantThreeAged && got.ThreeMinutesAgo != threeMin {
				t.Error("three_minutes_ago should be unchanged")
			}
			if aged := got.OneHourAgo == oldLatest; aged != tt.wantHourAged {
				t.Errorf("one_hour_ago aged = %v, want %v", aged, tt.wantHourAged)
			}
			if got.Latest.Data["BTC-USD"].Price != "120" {
				t.Error("latest should hold the new fetch")
			}
		})
	}
}

func TestRefresh_HistoricalNeverNewerThanLatest(t *testing.T) {
	fetched := map[string]models.Ticker{"BTC-USD": {Price: "100"}}
	rotator, _, fetcher := newTestRotator(fetched)

	var doc models.CacheDocument
	now := t0
	// Mezcla de intervalos cortos y largos, con algunas rondas sin datos
	steps := []time.Duration{0, 50 * time.Second, 10 * time.Second, 2 * time.Minute, 90 * time.Minute, 46 * time.Second, 20 * time.Minute}
	for i, step := range steps {
		now = now.Add(step)
		if i%3 == 2 {
			fetcher.result = nil
		} else {
			fetcher.result = fetched
		}
		doc, _ = rotator.Refresh(context.Background(), doc, now)

		latest := doc.Latest.CapturedTime()
		if doc.ThreeMinutesAgo.CapturedTime().After(latest) {
			t.Fatalf("step %d: three_minutes_ago newer than latest", i)
		}
		if doc.OneHourAgo.CapturedTime().After(latest) {
			t.Fatalf("step %d: one_hour_ago newer than latest", i)
		}
	}
}
