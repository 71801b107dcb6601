package services

import (
	"context"
	"errors"
	"fmt"

	"contentful-blog/pkg/models"
)

// ErrNotFound is matched by errors.Is when the requested resource does not exist upstream.
var ErrNotFound = errors.New("resource not found")

// Gateway is the read-only boundary to the content store.
type Gateway interface {
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	GetEntries(ctx context.Context, query models.Query) ([]models.Entry, error)
	CountEntries(ctx context.Context, query models.Query) (int, error)
	GetAsset(ctx context.Context, id string, query models.Query) (*models.Asset, error)
	GetContentTypes(ctx context.Context, query models.Query) (*models.ContentTypeCollection, error)
}

// APIError is a non-2xx answer from the content API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contentful: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("contentful: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return nil
}
