package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"contentful-blog/pkg/models"

	"golang.org/x/oauth2"
)

type ContentfulConfig struct {
	SpaceID     string
	AccessToken string
	Environment string
	Host        string
	// BaseURL overrides the scheme and host derived from Host, e.g. for a test server.
	BaseURL string
}

func (c ContentfulConfig) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	host := c.Host
	if host == "" {
		host = "cdn.contentful.com"
	}
	return "https://" + host
}

// ContentfulGateway reads from the Contentful Content Delivery API.
type ContentfulGateway struct {
	httpClient *http.Client
	endpoint   string
}

// NewContentfulGateway builds a gateway that authenticates every request with
// the configured access token. httpClient is the base transport and may be nil.
func NewContentfulGateway(cfg ContentfulConfig, httpClient *http.Client) *ContentfulGateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	env := cfg.Environment
	if env == "" {
		env = "master"
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})

	return &ContentfulGateway{
		httpClient: oauth2.NewClient(ctx, tokenSource),
		endpoint:   cfg.baseURL() + "/spaces/" + url.PathEscape(cfg.SpaceID) + "/environments/" + url.PathEscape(env),
	}
}

type includes struct {
	Asset []models.Asset `json:"Asset"`
}

type entryCollectionResponse struct {
	Total    int            `json:"total"`
	Skip     int            `json:"skip"`
	Limit    int            `json:"limit"`
	Items    []models.Entry `json:"items"`
	Includes includes       `json:"includes"`
}

type errorResponse struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// GetEntry fetches one entry through the collection endpoint so that linked
// assets come back in the includes block.
func (g *ContentfulGateway) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	collection, err := g.getEntryCollection(ctx, models.NewQuery().Where("sys.id", "", id))
	if err != nil {
		return nil, err
	}
	if len(collection.Items) == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Code: "NotFound", Message: fmt.Sprintf("entry %q not found", id)}
	}
	entry := collection.Items[0]
	return &entry, nil
}

func (g *ContentfulGateway) GetEntries(ctx context.Context, query models.Query) ([]models.Entry, error) {
	collection, err := g.getEntryCollection(ctx, query)
	if err != nil {
		return nil, err
	}
	return collection.Items, nil
}

func (g *ContentfulGateway) CountEntries(ctx context.Context, query models.Query) (int, error) {
	q := query.Clone().Limit(1)
	delete(q, "skip")
	delete(q, "order")
	collection, err := g.getEntryCollection(ctx, q)
	if err != nil {
		return 0, err
	}
	return collection.Total, nil
}

func (g *ContentfulGateway) GetAsset(ctx context.Context, id string, query models.Query) (*models.Asset, error) {
	var asset models.Asset
	if err := g.get(ctx, "/assets/"+url.PathEscape(id), query, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (g *ContentfulGateway) GetContentTypes(ctx context.Context, query models.Query) (*models.ContentTypeCollection, error) {
	var collection models.ContentTypeCollection
	if err := g.get(ctx, "/content_types", query, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (g *ContentfulGateway) getEntryCollection(ctx context.Context, query models.Query) (*models.EntryCollection, error) {
	var resp entryCollectionResponse
	if err := g.get(ctx, "/entries", query, &resp); err != nil {
		return nil, err
	}
	resolveAssets(resp.Items, resp.Includes.Asset)
	items := resp.Items
	if items == nil {
		items = []models.Entry{}
	}
	return &models.EntryCollection{
		Total: resp.Total,
		Skip:  resp.Skip,
		Limit: resp.Limit,
		Items: items,
	}, nil
}

// resolveAssets replaces image links with the included assets. Links that
// cannot be resolved (unpublished or deleted assets) are dropped.
func resolveAssets(items []models.Entry, assets []models.Asset) {
	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.Sys.ID] = a
	}
	for i := range items {
		image := items[i].Fields.Image
		if image == nil || !image.Sys.IsLink() {
			continue
		}
		if asset, ok := byID[image.Sys.ID]; ok {
			items[i].Fields.Image = &asset
		} else {
			items[i].Fields.Image = nil
		}
	}
}

func (g *ContentfulGateway) get(ctx context.Context, path string, query models.Query, out interface{}) error {
	endpoint := g.endpoint + path
	if len(query) > 0 {
		endpoint += "?" + query.Values().Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contentful request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil {
			if errResp.Sys.ID != "" {
				apiErr.Code = errResp.Sys.ID
			}
			apiErr.Message = errResp.Message
			apiErr.RequestID = errResp.RequestID
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
