package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is one part of a multipart upload.
type File struct {
	Name   string
	Reader io.Reader
}

// Upload posts files as multipart/form-data under field and unwraps the
// envelope into T.
func Upload[T any](ctx context.Context, c *Client, path, field string, files ...File) (T, error) {
	var zero T

	body, contentType, err := multipartBody(field, files)
	if err != nil {
		return zero, c.requestError(ctx, http.MethodPost, path, err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, body, contentType, sendOptions{auth: true})
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](resp)
}

func multipartBody(field string, files []File) (io.Reader, string, error) {
	if field == "" {
		return nil, "", errors.New("multipart field name is empty")
	}
	if len(files) == 0 {
		return nil, "", errors.New("no files to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		if f.Reader == nil {
			return nil, "", fmt.Errorf("file %q has no content", f.Name)
		}
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, "", fmt.Errorf("copy %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
