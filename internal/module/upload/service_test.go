package upload

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/simp-lee/waystar/internal/apitest"
	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
)

func newTestService(t *testing.T) (Service, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t)
	client, err := httpclient.New(httpclient.Options{BaseURL: srv.URL, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("httpclient.New() error = %v", err)
	}
	return NewService(client), srv
}

func file(name string) httpclient.File {
	return httpclient.File{Name: name, Reader: strings.NewReader("image:" + name)}
}

func TestUploadService_Single(t *testing.T) {
	svc, srv := newTestService(t)

	for _, c := range []Category{Avatar, City, Attraction, Slideshow} {
		t.Run(string(c), func(t *testing.T) {
			path := "/api/upload/" + string(c)
			srv.Data(http.MethodPost, path, domain.FileUpload{FileName: "a.jpg", FileURL: "/upload/" + string(c) + "/a.jpg"})

			got, err := svc.Upload(context.Background(), c, file("a.jpg"))
			if err != nil {
				t.Fatalf("Upload() error = %v", err)
			}
			if got.FileURL != "/upload/"+string(c)+"/a.jpg" {
				t.Errorf("FileURL = %q", got.FileURL)
			}
			last := srv.Last()
			if last.Path != path {
				t.Errorf("path = %q; want %q", last.Path, path)
			}
			if names := last.FormFiles("file"); len(names) != 1 || names[0] != "a.jpg" {
				t.Errorf("form files = %v", names)
			}
		})
	}
}

func TestUploadService_Batch(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Data(http.MethodPost, "/api/upload/attraction/batch", []domain.FileUpload{{FileName: "a.jpg"}, {FileName: "b.jpg"}})

	got, err := svc.UploadBatch(context.Background(), Attraction, file("a.jpg"), file("b.jpg"))
	if err != nil {
		t.Fatalf("UploadBatch() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("UploadBatch() = %v", got)
	}
	if names := srv.Last().FormFiles("files"); len(names) != 2 || names[1] != "b.jpg" {
		t.Errorf("form files = %v", names)
	}
}

func TestUploadService_Validation(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	_, unknown := svc.Upload(ctx, Category("video"), file("a.mp4"))
	_, avatarBatch := svc.UploadBatch(ctx, Avatar, file("a.png"))
	_, empty := svc.UploadBatch(ctx, Slideshow)
	for name, err := range map[string]error{
		"unknown":      unknown,
		"avatar batch": avatarBatch,
		"empty batch":  empty,
		"delete blank": svc.Delete(ctx, City, " "),
	} {
		if !domain.IsValidation(err) {
			t.Errorf("%s: error = %v; want validation", name, err)
		}
	}
	if len(srv.Calls()) != 0 {
		t.Error("invalid input sent a request")
	}

	if _, err := svc.Upload(ctx, City, httpclient.File{Name: "nil.jpg"}); !domain.IsRequest(err) {
		t.Errorf("nil reader error = %v; want request error", err)
	}
}

func TestUploadService_Delete(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	srv.Data(http.MethodDelete, "/api/upload", true)
	if err := svc.Delete(ctx, City, "/upload/city/x.jpg"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	q := srv.Last().Query
	if q.Get("fileUrl") != "/upload/city/x.jpg" || q.Get("category") != "city" {
		t.Errorf("query = %v", q)
	}

	srv.Data(http.MethodDelete, "/api/upload", false)
	if err := svc.Delete(ctx, City, "/upload/city/x.jpg"); !domain.IsBusiness(err) {
		t.Errorf("Delete() not deleted error = %v; want business", err)
	}
}
