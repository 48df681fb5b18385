// Package dataservice is the PostgREST client of the content layer. Every
// query is a single attempt: failures are classified and surfaced so the
// caller's fallback chain can decide, never retried here.
package dataservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/metrics"
)

const requestTimeout = 10 * time.Second

// structuralCodes are the PostgreSQL error codes that mean the query's shape
// no longer matches the remote schema (missing table, missing column). They
// trigger the legacy-schema fallback; everything else is transient.
var structuralCodes = map[string]bool{
	"42P01": true,
	"42703": true,
}

type Client struct {
	http *resty.Client
}

// NewClient builds a client for the data service's REST surface. key is
// sent both as the service api key and as the bearer token, the way the
// service expects anonymous-role access.
func NewClient(baseURL, key string) *Client {
	c := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetTimeout(requestTimeout).
		SetHeader("apikey", key).
		SetHeader("Authorization", "Bearer "+key).
		SetHeader("Accept", "application/json")
	c.SetRetryCount(0)
	return &Client{http: c}
}

var _ content.DataSource = (*Client)(nil)

func (c *Client) QueryCountdowns(ctx context.Context, schema content.Schema) ([]countdown.Event, error) {
	nowParam := "gte." + time.Now().UTC().Format(time.RFC3339)

	if schema == content.SchemaLegacy {
		var records []legacyCountdownRecord
		params := url.Values{}
		params.Set("select", "slug,title,target_at,featured,active")
		params.Set("active", "eq.true")
		params.Set("target_at", nowParam)
		params.Set("slug", "not.like.fine-%")
		params.Set("order", "featured.desc,target_at.asc")
		if err := c.getList(ctx, "countdowns_legacy", "/school_events", params, &records); err != nil {
			return nil, err
		}
		events := make([]countdown.Event, 0, len(records))
		for _, r := range records {
			events = append(events, r.normalize())
		}
		return events, nil
	}

	var records []currentCountdownRecord
	params := url.Values{}
	params.Set("select", "id,slug,title,target_at,is_featured,active")
	params.Set("active", "eq.true")
	params.Set("target_at", nowParam)
	params.Set("order", "is_featured.desc,target_at.asc")
	if err := c.getList(ctx, "countdowns", "/countdown_events", params, &records); err != nil {
		return nil, err
	}
	events := make([]countdown.Event, 0, len(records))
	for _, r := range records {
		events = append(events, r.normalize())
	}
	return events, nil
}

// QueryCountdownByKey resolves one countdown by slug, falling back to an id
// lookup when the key parses as one. A key that matches nothing in the
// requested schema is content.ErrNotFound.
func (c *Client) QueryCountdownByKey(ctx context.Context, key string, schema content.Schema) (countdown.Event, error) {
	if schema == content.SchemaLegacy {
		var records []legacyCountdownRecord
		params := url.Values{}
		params.Set("select", "slug,title,target_at,featured,active")
		params.Set("slug", "eq."+key)
		params.Set("limit", "1")
		if err := c.getList(ctx, "countdown_by_key_legacy", "/school_events", params, &records); err != nil {
			return countdown.Event{}, err
		}
		if len(records) == 0 {
			return countdown.Event{}, content.ErrNotFound
		}
		return records[0].normalize(), nil
	}

	record, err := c.currentByColumn(ctx, "slug", key)
	if err == nil {
		return record.normalize(), nil
	}
	if !errors.Is(err, content.ErrNotFound) || uuid.Validate(key) != nil {
		return countdown.Event{}, err
	}
	record, err = c.currentByColumn(ctx, "id", key)
	if err != nil {
		return countdown.Event{}, err
	}
	return record.normalize(), nil
}

func (c *Client) currentByColumn(ctx context.Context, column, value string) (currentCountdownRecord, error) {
	var records []currentCountdownRecord
	params := url.Values{}
	params.Set("select", "id,slug,title,target_at,is_featured,active")
	params.Set(column, "eq."+value)
	params.Set("limit", "1")
	if err := c.getList(ctx, "countdown_by_key", "/countdown_events", params, &records); err != nil {
		return currentCountdownRecord{}, err
	}
	if len(records) == 0 {
		return currentCountdownRecord{}, content.ErrNotFound
	}
	return records[0], nil
}

func (c *Client) QueryPublishedArticles(ctx context.Context) ([]content.Article, error) {
	var articles []content.Article
	params := url.Values{}
	params.Set("select", "*")
	params.Set("published", "eq.true")
	params.Set("order", "updated_at.desc")
	if err := c.getList(ctx, "articles", "/articles", params, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (c *Client) QueryAgendaEvents(ctx context.Context) ([]content.AgendaEvent, error) {
	var events []content.AgendaEvent
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "date.asc")
	if err := c.getList(ctx, "agenda", "/agenda_events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// QueryFeaturedArticleIDs reads the curated home page selection from the
// single site settings row.
func (c *Client) QueryFeaturedArticleIDs(ctx context.Context) ([]string, error) {
	var rows []struct {
		FeaturedArticleIDs []string `json:"featured_article_ids"`
	}
	params := url.Values{}
	params.Set("select", "featured_article_ids")
	params.Set("id", "eq.1")
	if err := c.getList(ctx, "site_settings", "/site_settings", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, content.ErrNotFound
	}
	return rows[0].FeaturedArticleIDs, nil
}

func (c *Client) getList(ctx context.Context, query, path string, params url.Values, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)
	if err != nil {
		metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
		return fmt.Errorf("data service request %s: %w", path, err)
	}
	if resp.IsError() {
		metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
		return asError(resp, path)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
		return fmt.Errorf("data service response %s: %w", path, err)
	}
	metrics.DataServiceRequests.WithLabelValues(query, "ok").Inc()
	return nil
}

// asError classifies a non-2xx answer: schema-mismatch codes become
// content.StructuralError, a 404 becomes content.ErrNotFound, the rest stay
// plain transient errors.
func asError(resp *resty.Response, path string) error {
	var body postgrestError
	_ = json.Unmarshal(resp.Body(), &body)

	if structuralCodes[body.Code] {
		return &content.StructuralError{Code: body.Code, Message: body.Message}
	}
	if resp.StatusCode() == http.StatusNotFound && body.Code == "" {
		return content.ErrNotFound
	}
	if body.Message != "" {
		return fmt.Errorf("data service %s: %d %s", path, resp.StatusCode(), body.Message)
	}
	return fmt.Errorf("data service %s: unexpected status %d", path, resp.StatusCode())
}
