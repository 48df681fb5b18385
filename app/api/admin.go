package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/tasks"
)

// Admin handlers write through the data service and then enqueue an
// immediate refresh of the affected section, so the next read already sees
// the change.

func (h *Handler) AdminCreateCountdown(c *gin.Context) {
	var event countdown.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if event.Title == "" || event.TargetAt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and target_at are required"})
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Slug == "" {
		event.Slug = event.ID
	}

	created, err := h.admin.InsertCountdown(c.Request.Context(), event)
	if err != nil {
		h.adminError(c, "insert_countdown", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshCountdownsTask(h.loader, h.store, h.board))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminUpdateCountdown(c *gin.Context) {
	var event countdown.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.admin.UpdateCountdown(c.Request.Context(), c.Param("id"), event)
	if err != nil {
		h.adminError(c, "update_countdown", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshCountdownsTask(h.loader, h.store, h.board))
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDeleteCountdown(c *gin.Context) {
	if err := h.admin.DeleteCountdown(c.Request.Context(), c.Param("id")); err != nil {
		h.adminError(c, "delete_countdown", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshCountdownsTask(h.loader, h.store, h.board))
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminCreateArticle(c *gin.Context) {
	var article content.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if article.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	created, err := h.admin.InsertArticle(c.Request.Context(), article)
	if err != nil {
		h.adminError(c, "insert_article", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshArticlesTask(h.loader, h.store))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminUpdateArticle(c *gin.Context) {
	var article content.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.admin.UpdateArticle(c.Request.Context(), c.Param("id"), article)
	if err != nil {
		h.adminError(c, "update_article", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshArticlesTask(h.loader, h.store))
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDeleteArticle(c *gin.Context) {
	if err := h.admin.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		h.adminError(c, "delete_article", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshArticlesTask(h.loader, h.store))
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminCreateAgendaEvent(c *gin.Context) {
	var event content.AgendaEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if event.Title == "" || event.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and date are required"})
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	created, err := h.admin.InsertAgendaEvent(c.Request.Context(), event)
	if err != nil {
		h.adminError(c, "insert_agenda", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshAgendaTask(h.loader, h.store))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminUpdateAgendaEvent(c *gin.Context) {
	var event content.AgendaEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.admin.UpdateAgendaEvent(c.Request.Context(), c.Param("id"), event)
	if err != nil {
		h.adminError(c, "update_agenda", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshAgendaTask(h.loader, h.store))
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDeleteAgendaEvent(c *gin.Context) {
	if err := h.admin.DeleteAgendaEvent(c.Request.Context(), c.Param("id")); err != nil {
		h.adminError(c, "delete_agenda", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshAgendaTask(h.loader, h.store))
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminSetFeaturedArticles(c *gin.Context) {
	var body struct {
		ArticleIDs []string `json:"article_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.admin.SetFeaturedArticleIDs(c.Request.Context(), body.ArticleIDs); err != nil {
		h.adminError(c, "set_featured", err)
		return
	}
	h.enqueueRefresh(tasks.NewRefreshArticlesTask(h.loader, h.store))
	c.JSON(http.StatusOK, gin.H{"article_ids": body.ArticleIDs})
}

func (h *Handler) adminError(c *gin.Context, operation string, err error) {
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	slog.Error("Admin operation failed", "operation", operation, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Data service error", "details": err.Error()})
}

func (h *Handler) enqueueRefresh(task tasks.TaskInterface) {
	if h.scheduler == nil {
		return
	}
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue refresh after admin mutation", "type", string(task.GetType()), "error", err)
	}
}
