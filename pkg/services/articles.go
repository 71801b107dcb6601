package services

import (
	"context"
	"time"

	"contentful-blog/pkg/models"
)

// Articles builds the blog's queries on top of a Gateway.
type Articles struct {
	Gateway     Gateway
	ContentType string
	PageSize    int
}

func NewArticles(gw Gateway, contentType string, pageSize int) *Articles {
	return &Articles{Gateway: gw, ContentType: contentType, PageSize: pageSize}
}

// Page fetches the entries shown on the 1-indexed page, newest first.
func (a *Articles) Page(ctx context.Context, page int) ([]models.Entry, error) {
	if !Reachable(page, a.PageSize) {
		return []models.Entry{}, nil
	}
	q := models.NewQuery().
		ContentType(a.ContentType).
		Order("-sys.createdAt").
		Skip(Skip(page, a.PageSize)).
		Limit(a.PageSize)
	return a.Gateway.GetEntries(ctx, q)
}

// Total counts every article, for the pagination control.
func (a *Articles) Total(ctx context.Context) (int, error) {
	return a.Gateway.CountEntries(ctx, models.NewQuery().ContentType(a.ContentType))
}

func (a *Articles) MaxPage(ctx context.Context) (int, error) {
	total, err := a.Total(ctx)
	if err != nil {
		return 0, err
	}
	return MaxPage(total, a.PageSize), nil
}

func (a *Articles) Get(ctx context.Context, id string) (*models.Entry, error) {
	return a.Gateway.GetEntry(ctx, id)
}

// Next returns the nearest entry created after createdAt, or nil.
func (a *Articles) Next(ctx context.Context, createdAt time.Time) (*models.Entry, error) {
	q := models.NewQuery().
		ContentType(a.ContentType).
		Where("sys.createdAt", "gt", createdAt.UTC().Format(time.RFC3339Nano)).
		Limit(1).
		Order("sys.createdAt")
	return a.first(ctx, q)
}

// Prev returns the nearest entry created before createdAt, or nil.
func (a *Articles) Prev(ctx context.Context, createdAt time.Time) (*models.Entry, error) {
	q := models.NewQuery().
		ContentType(a.ContentType).
		Where("sys.createdAt", "lt", createdAt.UTC().Format(time.RFC3339Nano)).
		Limit(1).
		Order("-sys.createdAt")
	return a.first(ctx, q)
}

// Adjacent runs the next and previous lookups one after the other.
func (a *Articles) Adjacent(ctx context.Context, createdAt time.Time) (next, prev *models.Entry, err error) {
	next, err = a.Next(ctx, createdAt)
	if err != nil {
		return nil, nil, err
	}
	prev, err = a.Prev(ctx, createdAt)
	if err != nil {
		return nil, nil, err
	}
	return next, prev, nil
}

func (a *Articles) first(ctx context.Context, q models.Query) (*models.Entry, error) {
	entries, err := a.Gateway.GetEntries(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}
