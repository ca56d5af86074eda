package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/simp-lee/waystar/internal/domain"
)

// Call sends a request and unwraps the response envelope into T. A non-OK
// envelope is returned as a CodeBusiness error carrying the server message.
func Call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](resp)
}

// Get sends a GET request with optional query parameters.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return Call[T](ctx, c, http.MethodGet, path, query, nil)
}

// Post sends a POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Call[T](ctx, c, http.MethodPost, path, nil, body)
}

// Put sends a PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Call[T](ctx, c, http.MethodPut, path, nil, body)
}

// Delete sends a DELETE request. Batch deletes pass the id list as body.
func Delete[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Call[T](ctx, c, http.MethodDelete, path, nil, body)
}

func decodeEnvelope[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()

	var env domain.Envelope[T]
	if err := decodeBody(resp, &env); err != nil {
		var zero T
		return zero, err
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return env.Data, &domain.AppError{
			Code:    domain.CodeBusiness,
			Status:  resp.StatusCode,
			Message: msg,
		}
	}
	return env.Data, nil
}

func decodeBody(resp *http.Response, v any) error {
	err := json.NewDecoder(resp.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		err = errEmptyBody
	}
	if err != nil {
		return &domain.AppError{
			Code:    domain.CodeServer,
			Status:  resp.StatusCode,
			Message: "invalid response body",
			Err:     err,
		}
	}
	return nil
}
