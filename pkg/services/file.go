package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"contentful-blog/pkg/models"
)

const (
	DefaultFileContentType = "article"

	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

// FileGateway serves articles from a directory of Markdown files with front
// matter. It understands the subset of the query syntax the blog uses.
type FileGateway struct {
	contentType string
	index       *articleIndex
}

func NewFileGateway(dir, contentType string) *FileGateway {
	if contentType == "" {
		contentType = DefaultFileContentType
	}
	return &FileGateway{
		contentType: contentType,
		index:       &articleIndex{dir: dir},
	}
}

// Invalidate drops the loaded index so the next call rereads the directory.
func (g *FileGateway) Invalidate() {
	g.index.invalidate()
}

func (g *FileGateway) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := g.index.get()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Sys.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("entry %q: %w", id, ErrNotFound)
}

func (g *FileGateway) GetEntries(ctx context.Context, query models.Query) ([]models.Entry, error) {
	matched, err := g.match(ctx, query)
	if err != nil {
		return nil, err
	}

	skip, err := intParam(query, "skip", 0)
	if err != nil {
		return nil, err
	}
	limit, err := intParam(query, "limit", defaultQueryLimit)
	if err != nil {
		return nil, err
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	if skip >= len(matched) {
		return []models.Entry{}, nil
	}
	matched = matched[skip:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (g *FileGateway) CountEntries(ctx context.Context, query models.Query) (int, error) {
	matched, err := g.match(ctx, query)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (g *FileGateway) GetAsset(ctx context.Context, id string, _ models.Query) (*models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := g.index.get()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Fields.Image != nil && e.Fields.Image.Sys.ID == id {
			asset := *e.Fields.Image
			return &asset, nil
		}
	}
	return nil, fmt.Errorf("asset %q: %w", id, ErrNotFound)
}

func (g *FileGateway) GetContentTypes(ctx context.Context, query models.Query) (*models.ContentTypeCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := []models.ContentType{}
	if id, ok := query["sys.id"]; !ok || id == g.contentType {
		items = append(items, models.ArticleContentType(g.contentType))
	}
	return &models.ContentTypeCollection{Total: len(items), Limit: defaultQueryLimit, Items: items}, nil
}

// match returns the filtered and ordered entries, before skip and limit.
func (g *FileGateway) match(ctx context.Context, query models.Query) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := g.index.get()
	if err != nil {
		return nil, err
	}

	var filters []func(models.Entry) bool
	for key, value := range query {
		switch key {
		case "order", "skip", "limit", "include", "locale":
			continue
		case "content_type":
			ct := value
			filters = append(filters, func(models.Entry) bool { return ct == g.contentType })
		case "sys.id":
			id := value
			filters = append(filters, func(e models.Entry) bool { return e.Sys.ID == id })
		case "sys.id[in]":
			ids := map[string]bool{}
			for _, id := range strings.Split(value, ",") {
				ids[strings.TrimSpace(id)] = true
			}
			filters = append(filters, func(e models.Entry) bool { return ids[e.Sys.ID] })
		default:
			field, op, ok := splitFilterKey(key)
			if !ok || (field != "sys.createdAt" && field != "sys.updatedAt") {
				return nil, fmt.Errorf("file gateway: unsupported query parameter %q", key)
			}
			f, err := timeFilter(field, op, value)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
	}

	matched := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		keep := true
		for _, f := range filters {
			if !f(e) {
				keep = false
				break
			}
		}
		if keep {
			matched = append(matched, e)
		}
	}

	less, err := orderFunc(query["order"])
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	return matched, nil
}

// splitFilterKey splits "sys.createdAt[gt]" into ("sys.createdAt", "gt").
func splitFilterKey(key string) (string, string, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, "", true
	}
	if !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

func sysTime(e models.Entry, field string) time.Time {
	if field == "sys.updatedAt" {
		return e.Sys.UpdatedAt
	}
	return e.Sys.CreatedAt
}

func timeFilter(field, op, value string) (func(models.Entry) bool, error) {
	ref, err := models.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("file gateway: %s: %w", field, err)
	}
	t := ref.Time
	switch op {
	case "":
		return func(e models.Entry) bool { return sysTime(e, field).Equal(t) }, nil
	case "ne":
		return func(e models.Entry) bool { return !sysTime(e, field).Equal(t) }, nil
	case "gt":
		return func(e models.Entry) bool { return sysTime(e, field).After(t) }, nil
	case "gte":
		return func(e models.Entry) bool { return !sysTime(e, field).Before(t) }, nil
	case "lt":
		return func(e models.Entry) bool { return sysTime(e, field).Before(t) }, nil
	case "lte":
		return func(e models.Entry) bool { return !sysTime(e, field).After(t) }, nil
	default:
		return nil, fmt.Errorf("file gateway: unsupported operator %q on %s", op, field)
	}
}

// orderFunc builds a comparison from a comma separated order value.
// Ties fall back to creation time and then id so results are deterministic.
func orderFunc(order string) (func(a, b models.Entry) bool, error) {
	type key struct {
		cmp  func(a, b models.Entry) int
		desc bool
	}
	var keys []key
	for _, part := range strings.Split(order, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")

		var cmp func(a, b models.Entry) int
		switch part {
		case "sys.createdAt":
			cmp = func(a, b models.Entry) int { return a.Sys.CreatedAt.Compare(b.Sys.CreatedAt) }
		case "sys.updatedAt":
			cmp = func(a, b models.Entry) int { return a.Sys.UpdatedAt.Compare(b.Sys.UpdatedAt) }
		case "sys.id":
			cmp = func(a, b models.Entry) int { return strings.Compare(a.Sys.ID, b.Sys.ID) }
		case "fields.title":
			cmp = func(a, b models.Entry) int { return strings.Compare(a.Fields.Title, b.Fields.Title) }
		case "fields.publishDate":
			cmp = func(a, b models.Entry) int { return a.Fields.PublishDate.Compare(b.Fields.PublishDate.Time) }
		default:
			return nil, fmt.Errorf("file gateway: unsupported order %q", part)
		}
		keys = append(keys, key{cmp: cmp, desc: desc})
	}
	keys = append(keys,
		key{cmp: func(a, b models.Entry) int { return a.Sys.CreatedAt.Compare(b.Sys.CreatedAt) }},
		key{cmp: func(a, b models.Entry) int { return strings.Compare(a.Sys.ID, b.Sys.ID) }},
	)

	return func(a, b models.Entry) bool {
		for _, k := range keys {
			c := k.cmp(a, b)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	}, nil
}

func intParam(query models.Query, key string, fallback int) (int, error) {
	v, ok := query[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("file gateway: invalid %s %q", key, v)
	}
	return n, nil
}
