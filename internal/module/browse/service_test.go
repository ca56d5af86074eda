package browse

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/simp-lee/waystar/internal/apitest"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
)

func newClient(t *testing.T, baseURL string) *httpclient.Client {
	t.Helper()
	client, err := httpclient.New(httpclient.Options{BaseURL: baseURL, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}
	return client
}

func TestBrowseService_Record(t *testing.T) {
	backend := apitest.NewBackend(t)
	svc := NewService(newClient(t, backend.URL))
	ctx := context.Background()

	rec := domain.BrowseRecord{UserID: 1, AttractionID: 7, BrowseDuration: 42, DeviceInfo: "Chrome/Windows"}
	if err := svc.Record(ctx, rec); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if got := backend.BrowseRecords(); len(got) != 1 || got[0] != rec {
		t.Errorf("BrowseRecords() = %+v", got)
	}

	if err := svc.Record(ctx, domain.BrowseRecord{UserID: 1, AttractionID: 7}); !domain.IsValidation(err) {
		t.Errorf("zero duration error = %v; want validation", err)
	}
	if got := backend.Hits(http.MethodPost, RecordPath); got != 1 {
		t.Errorf("record hits = %d; want 1", got)
	}

	backend.FailNext(http.MethodPost, RecordPath, http.StatusInternalServerError, "db down")
	if err := svc.Record(ctx, rec); !domain.IsServer(err) {
		t.Errorf("server failure error = %v; want server", err)
	}
}

func TestBrowseService_Queries(t *testing.T) {
	srv := apitest.NewServer(t)
	svc := NewService(newClient(t, srv.URL))
	ctx := context.Background()

	srv.Data(http.MethodGet, "/api/browse/stats/attraction/7", domain.BrowseStatistics{AttractionID: 7, TotalViews: 30, AverageDuration: 12.5})
	stats, err := svc.AttractionStats(ctx, 7)
	if err != nil || stats.TotalViews != 30 || stats.AverageDuration != 12.5 {
		t.Fatalf("AttractionStats() = %+v, %v", stats, err)
	}

	srv.Data(http.MethodGet, "/api/browse/history", []domain.BrowseHistory{{BrowseRecordID: 1, AttractionID: 7}})
	history, err := svc.History(ctx, 3, 0, 0)
	if err != nil || len(history) != 1 {
		t.Fatalf("History() = %v, %v", history, err)
	}
	q := srv.Last().Query
	if q.Get("userId") != "3" || q.Get("page") != "1" || q.Get("size") != "10" {
		t.Errorf("history query = %v", q)
	}

	if _, err := svc.Popular(ctx, 5); err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if got := srv.Last().Query.Get("limit"); got != "5" {
		t.Errorf("limit = %q; want 5", got)
	}
	if _, err := svc.Popular(ctx, 0); err != nil {
		t.Fatalf("Popular(0) error = %v", err)
	}
	if got := srv.Last().Query.Get("limit"); got != "10" {
		t.Errorf("default limit = %q; want 10", got)
	}

	if _, err := svc.History(ctx, 0, 1, 10); !domain.IsValidation(err) {
		t.Errorf("History(0) error = %v; want validation", err)
	}
}
