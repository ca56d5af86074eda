// Package upload sends images to the backend file store.
package upload

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/httpclient"
	"github.com/simp-lee/waystar/internal/pkg"
)

const base = "/api/upload"

// Category selects the storage folder of an upload.
type Category string

const (
	Avatar     Category = "avatar"
	City       Category = "city"
	Attraction Category = "attraction"
	Slideshow  Category = "slideshow"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Avatar, City, Attraction, Slideshow:
		return true
	}
	return false
}

// batchable reports whether the backend accepts several files at once.
func (c Category) batchable() bool {
	return c == Attraction || c == Slideshow
}

// Service defines file upload operations.
type Service interface {
	Upload(ctx context.Context, category Category, file httpclient.File) (*domain.FileUpload, error)
	UploadBatch(ctx context.Context, category Category, files ...httpclient.File) ([]domain.FileUpload, error)
	Delete(ctx context.Context, category Category, fileURL string) error
}

type uploadService struct {
	client *httpclient.Client
}

// NewService creates an upload Service.
func NewService(client *httpclient.Client) Service {
	return &uploadService{client: client}
}

func (s *uploadService) Upload(ctx context.Context, category Category, file httpclient.File) (*domain.FileUpload, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	return httpclient.Upload[*domain.FileUpload](ctx, s.client, base+"/"+string(category), "file", file)
}

// UploadBatch sends files in one request. Only attraction and slideshow
// images can be uploaded in batches.
func (s *uploadService) UploadBatch(ctx context.Context, category Category, files ...httpclient.File) ([]domain.FileUpload, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	if !category.batchable() {
		return nil, validationError("category", "oneof=attraction slideshow")
	}
	if len(files) == 0 {
		return nil, validationError("files", "required")
	}
	return httpclient.Upload[[]domain.FileUpload](ctx, s.client, fmt.Sprintf("%s/%s/batch", base, category), "files", files...)
}

func (s *uploadService) Delete(ctx context.Context, category Category, fileURL string) error {
	if err := checkCategory(category); err != nil {
		return err
	}
	fileURL = strings.TrimSpace(fileURL)
	if err := pkg.ValidateVar("fileUrl", fileURL, "required"); err != nil {
		return err
	}
	query := url.Values{"fileUrl": {fileURL}, "category": {string(category)}}
	deleted, err := httpclient.Call[bool](ctx, s.client, http.MethodDelete, base, query, nil)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewAppError(domain.CodeBusiness, "file was not deleted", nil)
	}
	return nil
}

func checkCategory(c Category) error {
	if !c.Valid() {
		return validationError("category", "oneof=avatar city attraction slideshow")
	}
	return nil
}

func validationError(field, rule string) error {
	return &domain.AppError{
		Code:    domain.CodeValidation,
		Message: domain.ErrValidation.Message,
		Fields:  map[string]string{field: rule},
	}
}
