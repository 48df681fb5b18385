package dataservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/metrics"
)

// Mutations write to the current schema only; the legacy table is
// read-only history and the static dataset is compiled in.

func (c *Client) InsertCountdown(ctx context.Context, event countdown.Event) (countdown.Event, error) {
	record := currentCountdownRecord{
		ID:         event.ID,
		Slug:       event.Slug,
		Title:      event.Title,
		TargetAt:   event.TargetAt,
		IsFeatured: event.Featured,
		Active:     event.Active,
	}
	var created []currentCountdownRecord
	if err := c.mutate(ctx, "insert_countdown", resty.MethodPost, "/countdown_events", nil, record, &created); err != nil {
		return countdown.Event{}, err
	}
	if len(created) == 0 {
		return countdown.Event{}, fmt.Errorf("data service insert returned no row")
	}
	return created[0].normalize(), nil
}

func (c *Client) UpdateCountdown(ctx context.Context, id string, event countdown.Event) (countdown.Event, error) {
	record := currentCountdownRecord{
		Slug:       event.Slug,
		Title:      event.Title,
		TargetAt:   event.TargetAt,
		IsFeatured: event.Featured,
		Active:     event.Active,
	}
	params := url.Values{}
	params.Set("id", "eq."+id)
	var updated []currentCountdownRecord
	if err := c.mutate(ctx, "update_countdown", resty.MethodPatch, "/countdown_events", params, record, &updated); err != nil {
		return countdown.Event{}, err
	}
	if len(updated) == 0 {
		return countdown.Event{}, content.ErrNotFound
	}
	return updated[0].normalize(), nil
}

func (c *Client) DeleteCountdown(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	var deleted []currentCountdownRecord
	if err := c.mutate(ctx, "delete_countdown", resty.MethodDelete, "/countdown_events", params, nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (c *Client) InsertArticle(ctx context.Context, article content.Article) (content.Article, error) {
	var created []content.Article
	if err := c.mutate(ctx, "insert_article", resty.MethodPost, "/articles", nil, article, &created); err != nil {
		return content.Article{}, err
	}
	if len(created) == 0 {
		return content.Article{}, fmt.Errorf("data service insert returned no row")
	}
	return created[0], nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, article content.Article) (content.Article, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)
	var updated []content.Article
	if err := c.mutate(ctx, "update_article", resty.MethodPatch, "/articles", params, article, &updated); err != nil {
		return content.Article{}, err
	}
	if len(updated) == 0 {
		return content.Article{}, content.ErrNotFound
	}
	return updated[0], nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	var deleted []content.Article
	if err := c.mutate(ctx, "delete_article", resty.MethodDelete, "/articles", params, nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (c *Client) InsertAgendaEvent(ctx context.Context, event content.AgendaEvent) (content.AgendaEvent, error) {
	var created []content.AgendaEvent
	if err := c.mutate(ctx, "insert_agenda", resty.MethodPost, "/agenda_events", nil, event, &created); err != nil {
		return content.AgendaEvent{}, err
	}
	if len(created) == 0 {
		return content.AgendaEvent{}, fmt.Errorf("data service insert returned no row")
	}
	return created[0], nil
}

func (c *Client) UpdateAgendaEvent(ctx context.Context, id string, event content.AgendaEvent) (content.AgendaEvent, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)
	var updated []content.AgendaEvent
	if err := c.mutate(ctx, "update_agenda", resty.MethodPatch, "/agenda_events", params, event, &updated); err != nil {
		return content.AgendaEvent{}, err
	}
	if len(updated) == 0 {
		return content.AgendaEvent{}, content.ErrNotFound
	}
	return updated[0], nil
}

func (c *Client) DeleteAgendaEvent(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	var deleted []content.AgendaEvent
	if err := c.mutate(ctx, "delete_agenda", resty.MethodDelete, "/agenda_events", params, nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return content.ErrNotFound
	}
	return nil
}

// SetFeaturedArticleIDs replaces the curated home page selection.
func (c *Client) SetFeaturedArticleIDs(ctx context.Context, ids []string) error {
	params := url.Values{}
	params.Set("id", "eq.1")
	body := map[string][]string{"featured_article_ids": ids}
	var updated []json.RawMessage
	if err := c.mutate(ctx, "set_featured", resty.MethodPatch, "/site_settings", params, body, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, query, method, path string, params url.Values, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Content-Type", "application/json")
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
		return fmt.Errorf("data service request %s: %w", path, err)
	}
	if resp.IsError() {
		metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
		return asError(resp, path)
	}
	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			metrics.DataServiceRequests.WithLabelValues(query, "error").Inc()
			return fmt.Errorf("data service response %s: %w", path, err)
		}
	}
	metrics.DataServiceRequests.WithLabelValues(query, "ok").Inc()
	return nil
}
