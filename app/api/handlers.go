package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/search"
	"github.com/01001010100011/scolamia.it/app/tasks"
)

func NewHandler(store *content.Store, board *content.Board, loader *content.Loader,
	site content.Site, pinnedSlug string, admin AdminService, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		store:      store,
		board:      board,
		loader:     loader,
		site:       site,
		pinnedSlug: pinnedSlug,
		admin:      admin,
		scheduler:  scheduler,
	}
}

func (h *Handler) GetHome(c *gin.Context) {
	view := content.ComposeHome(h.store, h.board, h.site, time.Now())
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ListArticles(c *gin.Context) {
	articles, errMsg := h.store.Articles()
	if errMsg != "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    len(articles),
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	article, ok := h.store.ArticleByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Articolo non trovato."})
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *Handler) ListAgenda(c *gin.Context) {
	events, errMsg := h.store.Agenda()
	if errMsg != "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

// ListCountdowns returns the future countdowns, soonest first, with the
// featured one split out. An optional q parameter filters by title and date
// tokens; the featured slot is then picked from the filtered list.
func (h *Handler) ListCountdowns(c *gin.Context) {
	set := h.store.Countdowns()
	now := time.Now()
	events := countdown.SortByTarget(countdown.OnlyFuture(set.Events, now))

	query := search.Normalize(c.Query("q"))
	if query != "" {
		filtered := make([]countdown.Event, 0, len(events))
		for _, e := range events {
			blob := search.Normalize(e.Title + " " + search.DateTokens(e.TargetAt))
			if search.Matches(blob, query) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	response := gin.H{
		"source": set.Source,
		"total":  len(events),
	}
	if q := c.Query("q"); q != "" {
		response["query"] = q
	}

	featured, rest, ok := countdown.Select(events, h.pinnedSlug, now)
	if !ok {
		response["featured"] = nil
		response["rest"] = []gin.H{}
		c.JSON(http.StatusOK, response)
		return
	}

	restViews := make([]gin.H, 0, len(rest))
	for _, e := range rest {
		restViews = append(restViews, countdownView(e, now))
	}
	response["featured"] = countdownView(featured, now)
	response["rest"] = restViews
	c.JSON(http.StatusOK, response)
}

// GetCountdown resolves one countdown live through the source chain, so the
// detail page's one-second tick always renders against fresh data.
func (h *Handler) GetCountdown(c *gin.Context) {
	key := c.Param("slug")
	event, source, err := h.loader.CountdownEvent(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Countdown non trovato."})
			return
		}
		slog.Error("Countdown lookup failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore caricamento countdown."})
		return
	}

	view := countdownView(event, time.Now())
	view["source"] = source
	c.JSON(http.StatusOK, view)
}

func (h *Handler) Search(c *gin.Context) {
	results := h.store.Search(h.site, c.Query("q"), time.Now())
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	articles, articlesErr := h.store.Articles()
	agenda, agendaErr := h.store.Agenda()
	set := h.store.Countdowns()

	health["articles"] = len(articles)
	health["agenda"] = len(agenda)
	health["countdowns"] = len(set.Events)
	health["countdown_source"] = set.Source
	health["board_state"] = boardStateLabel(h.board.State())
	if articlesErr != "" {
		health["articles_error"] = articlesErr
	}
	if agendaErr != "" {
		health["agenda_error"] = agendaErr
	}

	c.JSON(http.StatusOK, health)
}

func boardStateLabel(state countdown.State) string {
	switch state {
	case countdown.Ticking:
		return "ticking"
	case countdown.Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// countdownView renders one event with its remaining time, the formatted
// display string and the target date label.
func countdownView(event countdown.Event, now time.Time) gin.H {
	view := gin.H{
		"event":        event,
		"display":      countdown.FormatRemainingAt(event.TargetAt, now),
		"target_label": countdown.FormatTarget(event.TargetAt),
	}
	if remaining, ok := countdown.RemainingAt(event.TargetAt, now); ok {
		view["remaining"] = remaining
		totals, _ := countdown.TotalsAt(event.TargetAt, now)
		view["totals"] = totals
		view["expired"] = false
	} else {
		view["expired"] = true
	}
	return view
}
