package slideshow

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

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

func TestSlideshowService_Create(t *testing.T) {
	srv := apitest.NewServer(t)
	svc := NewService(newClient(t, srv.URL))
	srv.Data(http.MethodPost, "/api/slideshow/create", domain.Slideshow{SlideshowID: 3, Title: "Spring"})

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	got, err := svc.Create(context.Background(), CreateRequest{
		Title:     "Spring",
		ImageURL:  "/upload/slideshow/a.jpg",
		StartTime: domain.DateTime{Time: start},
		EndTime:   domain.DateTime{Time: start.AddDate(0, 1, 0)},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.SlideshowID != 3 {
		t.Errorf("SlideshowID = %d; want 3", got.SlideshowID)
	}

	var body map[string]any
	if err := srv.Last().Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["startTime"] != "2025-03-01 00:00:00" || body["endTime"] != "2025-04-01 00:00:00" {
		t.Errorf("window = %v .. %v", body["startTime"], body["endTime"])
	}
	if _, ok := body["attractionId"]; ok {
		t.Errorf("unset attractionId sent: %v", body)
	}
}

func TestSlideshowService_Validation(t *testing.T) {
	srv := apitest.NewServer(t)
	svc := NewService(newClient(t, srv.URL))
	ctx := context.Background()
	now := time.Now()

	_, missing := svc.Create(ctx, CreateRequest{Title: "no image"})
	_, reversed := svc.Update(ctx, UpdateRequest{
		SlideshowID: 1,
		StartTime:   domain.DateTime{Time: now},
		EndTime:     domain.DateTime{Time: now.Add(-time.Minute)},
	})
	for name, err := range map[string]error{
		"missing image": missing,
		"reversed":      reversed,
		"click":         svc.Click(ctx, 0),
		"batch":         svc.BatchDelete(ctx, nil),
	} {
		if !domain.IsValidation(err) {
			t.Errorf("%s: error = %v; want validation", name, err)
		}
	}
	if len(srv.Calls()) != 0 {
		t.Error("invalid input sent a request")
	}
}

func TestSlideshowService_Requests(t *testing.T) {
	srv := apitest.NewServer(t)
	svc := NewService(newClient(t, srv.URL))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"update", func() error { _, err := svc.Update(ctx, UpdateRequest{SlideshowID: 2}); return err }, http.MethodPut, "/api/slideshow/update"},
		{"delete", func() error { return svc.Delete(ctx, 2) }, http.MethodDelete, "/api/slideshow/delete/2"},
		{"batch", func() error { return svc.BatchDelete(ctx, []int64{2}) }, http.MethodDelete, "/api/slideshow/batch-delete"},
		{"list", func() error { _, err := svc.List(ctx, QueryRequest{Title: "s"}); return err }, http.MethodGet, "/api/slideshow/list"},
		{"detail", func() error { _, err := svc.Detail(ctx, 2); return err }, http.MethodGet, "/api/slideshow/detail/2"},
		{"active", func() error { _, err := svc.Active(ctx); return err }, http.MethodGet, "/api/slideshow/active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("error = %v", err)
			}
			if last := srv.Last(); last.Method != tt.method || last.Path != tt.path {
				t.Errorf("request = %s %s; want %s %s", last.Method, last.Path, tt.method, tt.path)
			}
		})
	}
}

func TestSlideshowService_PublicAndClick(t *testing.T) {
	backend := apitest.NewBackend(t)
	backend.SetSlideshows(
		domain.Slideshow{SlideshowID: 1, Title: "Lakes", Status: 1},
		domain.Slideshow{SlideshowID: 2, Title: "Temples", Status: 1},
	)
	svc := NewService(newClient(t, backend.URL))
	ctx := context.Background()

	items, err := svc.Public(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("Public() = %v, %v", items, err)
	}
	if err := svc.Click(ctx, 2); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if got := backend.Clicks(2); got != 1 {
		t.Errorf("Clicks(2) = %d; want 1", got)
	}
}
