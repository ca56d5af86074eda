package city

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/simp-lee/waystar/internal/apitest"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
)

func TestCityService_List(t *testing.T) {
	srv := apitest.NewServer(t)
	client, err := httpclient.New(httpclient.Options{BaseURL: srv.URL, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}
	svc := NewService(client)
	srv.Data(http.MethodPost, "/api/city/list", domain.PageResult[domain.CityCard]{
		Records: []domain.CityCard{{CityName: "Kyoto", Country: "Japan", AttractionCount: 12}},
		Total:   1,
	})

	page, err := svc.List(context.Background(), QueryRequest{Country: "Japan"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].AttractionCount != 12 {
		t.Errorf("List() = %+v", page)
	}

	var body map[string]any
	if err := srv.Last().Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["pageNum"] != float64(1) || body["pageSize"] != float64(10) || body["country"] != "Japan" {
		t.Errorf("body = %v", body)
	}
}

func TestCityService_ListValidation(t *testing.T) {
	srv := apitest.NewServer(t)
	client, err := httpclient.New(httpclient.Options{BaseURL: srv.URL, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}

	_, err = NewService(client).List(context.Background(), QueryRequest{PageQuery: domain.PageQuery{PageSize: 501}})
	if !domain.IsValidation(err) {
		t.Errorf("List() error = %v; want validation", err)
	}
	if len(srv.Calls()) != 0 {
		t.Error("invalid page size sent a request")
	}
}
