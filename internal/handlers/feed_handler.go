package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
)

// FeedHandler handles feed HTTP requests
type FeedHandler struct {
	feedRepository repositories.FeedRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository) *FeedHandler {
	return &FeedHandler{feedRepository: feedRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.HomeFeed)
	g.GET("/feed/reels", h.ReelsFeed)
	g.GET("/feed/saved", h.SavedPosts)
}

// HomeFeed returns the viewer's home timeline: their own posts plus
// posts from accounts they follow, newest first, fully hydrated.
func (h *FeedHandler) HomeFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	page, limit := parsePaging(c)
	posts, err := h.feedRepository.HomeFeed(viewerID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"page":  page,
		"count": len(posts),
	})
}

// ReelsFeed returns recent non-archived reels across the platform.
func (h *FeedHandler) ReelsFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	reels, err := h.feedRepository.ReelsFeed(viewerID, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"reels": reels, "count": len(reels)})
}

// SavedPosts returns the posts the viewer has saved, most recently
// saved first.
func (h *FeedHandler) SavedPosts(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	page, limit := parsePaging(c)
	posts, err := h.feedRepository.SavedPosts(viewerID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"page":  page,
		"count": len(posts),
	})
}

// parsePaging reads page/limit query params; the repositories clamp the
// values, so garbage here just falls back to defaults.
func parsePaging(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
