package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/realtime"
	"github.com/taste-fun/tf-indexer/internal/store"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	defaultSwapLimit = 100
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /healthz
	HealthCheck(c *gin.Context)

	// ListThemes retrieves themes with optional filters
	// GET /v1/themes?status=<status>&creator=<address>&limit=<limit>&offset=<offset>
	ListThemes(c *gin.Context)

	// GetTheme retrieves a single theme by its account address
	// GET /v1/themes/:key
	GetTheme(c *gin.Context)

	// ListThemeSwaps retrieves recent trades on a theme, newest first
	// GET /v1/themes/:key/swaps?limit=<limit>
	ListThemeSwaps(c *gin.Context)

	// ListIdeas retrieves ideas with optional filters
	// GET /v1/ideas?theme=<key>&status=<status>&initiator=<address>&limit=<limit>&offset=<offset>
	ListIdeas(c *gin.Context)

	// GetIdea retrieves a single idea by its account address
	// GET /v1/ideas/:key
	GetIdea(c *gin.Context)

	// ListIdeaVotes retrieves the current votes on an idea
	// GET /v1/ideas/:key/votes
	ListIdeaVotes(c *gin.Context)

	// GetStats retrieves projection-wide aggregates
	// GET /v1/stats
	GetStats(c *gin.Context)

	// ListParkedJobs retrieves generation jobs that exhausted retries
	// GET /v1/jobs/parked?limit=<limit>&offset=<offset>
	ListParkedJobs(c *gin.Context)

	// Subscribe upgrades the connection and streams realtime messages
	// GET /v1/ws
	Subscribe(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
	hub   *realtime.Hub
}

// NewHandler creates a new REST API handler over the projection store
// and the realtime hub.
func NewHandler(s store.Store, hub *realtime.Hub) Handler {
	return &handler{
		store: s,
		hub:   hub,
	}
}

// listResponse is the envelope for collection endpoints
type listResponse[T any] struct {
	Items []T `json:"items"`
}

// parsePagination reads limit/offset with defaults and a cap
func parsePagination(c *gin.Context) (limit, offset int, ok bool) {
	limit = defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			respondBadRequest(c, "Invalid limit")
			return 0, 0, false
		}
		if v > maxPageLimit {
			v = maxPageLimit
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondBadRequest(c, "Invalid offset")
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListThemes retrieves themes with optional filters
func (h *handler) ListThemes(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := store.ThemeFilter{
		Creator: c.Query("creator"),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ThemeStatus(raw)
		switch status {
		case domain.ThemeStatusActive, domain.ThemeStatusMigrated, domain.ThemeStatusPaused:
			filter.Status = status
		default:
			respondBadRequest(c, "Invalid theme status")
			return
		}
	}

	themes, err := h.store.ListThemes(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list themes")
		return
	}

	items := make([]ThemeDTO, 0, len(themes))
	for _, t := range themes {
		items = append(items, themeDTO(t))
	}
	c.JSON(http.StatusOK, listResponse[ThemeDTO]{Items: items})
}

// GetTheme retrieves a single theme by its account address
func (h *handler) GetTheme(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		respondBadRequest(c, "Theme key is required")
		return
	}

	theme, err := h.store.GetTheme(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, err, "Failed to get theme")
		return
	}
	if theme == nil {
		respondNotFound(c, "Theme not found")
		return
	}

	c.JSON(http.StatusOK, themeDTO(theme))
}

// ListThemeSwaps retrieves recent trades on a theme, newest first
func (h *handler) ListThemeSwaps(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		respondBadRequest(c, "Theme key is required")
		return
	}

	limit := defaultSwapLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			respondBadRequest(c, "Invalid limit")
			return
		}
		if v > maxPageLimit {
			v = maxPageLimit
		}
		limit = v
	}

	swaps, err := h.store.ListSwapsByTheme(c.Request.Context(), key, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list swaps")
		return
	}

	items := make([]SwapDTO, 0, len(swaps))
	for _, s := range swaps {
		items = append(items, swapDTO(s))
	}
	c.JSON(http.StatusOK, listResponse[SwapDTO]{Items: items})
}

// ListIdeas retrieves ideas with optional filters
func (h *handler) ListIdeas(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := store.IdeaFilter{
		ThemeKey:  c.Query("theme"),
		Initiator: c.Query("initiator"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.IdeaStatus(raw)
		if !status.Valid() {
			respondBadRequest(c, "Invalid idea status")
			return
		}
		filter.Status = status
	}

	ideas, err := h.store.ListIdeas(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list ideas")
		return
	}

	items := make([]IdeaDTO, 0, len(ideas))
	for _, i := range ideas {
		items = append(items, ideaDTO(i))
	}
	c.JSON(http.StatusOK, listResponse[IdeaDTO]{Items: items})
}

// GetIdea retrieves a single idea by its account address
func (h *handler) GetIdea(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		respondBadRequest(c, "Idea key is required")
		return
	}

	idea, err := h.store.GetIdea(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, err, "Failed to get idea")
		return
	}
	if idea == nil {
		respondNotFound(c, "Idea not found")
		return
	}

	c.JSON(http.StatusOK, ideaDTO(idea))
}

// ListIdeaVotes retrieves the current votes on an idea
func (h *handler) ListIdeaVotes(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		respondBadRequest(c, "Idea key is required")
		return
	}

	votes, err := h.store.ListVotesByIdea(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, err, "Failed to list votes")
		return
	}

	items := make([]VoteDTO, 0, len(votes))
	for _, v := range votes {
		items = append(items, voteDTO(v))
	}
	c.JSON(http.StatusOK, listResponse[VoteDTO]{Items: items})
}

// GetStats retrieves projection-wide aggregates
func (h *handler) GetStats(c *gin.Context) {
	stats, err := h.store.GetGlobalStats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListParkedJobs retrieves generation jobs that exhausted retries
func (h *handler) ListParkedJobs(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	jobs, err := h.store.ListParkedJobs(c.Request.Context(), limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list parked jobs")
		return
	}

	items := make([]ParkedJobDTO, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, parkedJobDTO(j))
	}
	c.JSON(http.StatusOK, listResponse[ParkedJobDTO]{Items: items})
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The REST surface is already open; the websocket feed carries the
	// same public data.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Subscribe upgrades the connection and streams realtime messages
func (h *handler) Subscribe(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.HandleConnection(conn)
}
