package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
	"github.com/tahmid-rayat/momentgram/backend/pkg/media"
)

// StoryHandler handles story HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	followRepository repositories.FollowRepository
	mediaStore       media.Store
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, followRepo repositories.FollowRepository, mediaStore media.Store) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		followRepository: followRepo,
		mediaStore:       mediaStore,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.GetStoriesFeed)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories/:id/seen", h.MarkSeen)
	g.POST("/stories/:id/react", h.ReactToStory)
}

// CreateStory uploads the attached media files and creates a story that
// expires 24 hours from now.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart form required")
	}
	files := form.File["media"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one media file is required")
	}

	ctx := c.Request().Context()
	var items []models.StoryItem
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read media file")
		}

		asset, err := h.mediaStore.Upload(ctx, src, "stories")
		src.Close()
		if err != nil {
			for _, item := range items {
				h.mediaStore.DeleteBestEffort(ctx, item.AssetID, item.Type)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload story media")
		}

		itemType := asset.ResourceType
		if itemType == "" {
			itemType = guessMediaType(fileHeader.Header.Get("Content-Type"))
		}
		items = append(items, models.StoryItem{
			ID:        uuid.NewString(),
			Type:      itemType,
			URL:       asset.URL,
			AssetID:   asset.AssetID,
			CreatedAt: time.Now(),
		})
	}

	story := &models.Story{
		UserID: userID,
		Items:  items,
	}
	if err := h.storyRepository.CreateStory(ctx, story); err != nil {
		for _, item := range items {
			h.mediaStore.DeleteBestEffort(ctx, item.AssetID, item.Type)
		}
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"story": story})
}

// GetStoriesFeed returns active stories from the accounts the viewer
// follows (plus their own), with per-story seen flags.
func (h *StoryHandler) GetStoriesFeed(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return httpError(err)
	}
	followingIDs = append(followingIDs, userID)

	ctx := c.Request().Context()
	stories, err := h.storyRepository.GetStoriesByUserIDs(ctx, followingIDs)
	if err != nil {
		return httpError(err)
	}

	storyIDs := make([]string, 0, len(stories))
	for i := range stories {
		storyIDs = append(storyIDs, stories[i].ID.Hex())
	}
	seen, err := h.storyRepository.GetSeenStoryIDs(userID, storyIDs)
	if err != nil {
		return httpError(err)
	}

	type storyWithSeen struct {
		models.Story
		Seen bool `json:"seen"`
	}
	out := make([]storyWithSeen, 0, len(stories))
	for i := range stories {
		out = append(out, storyWithSeen{Story: stories[i], Seen: seen[stories[i].ID.Hex()]})
	}

	return c.JSON(http.StatusOK, echo.Map{"stories": out, "count": len(out)})
}

// GetStory returns a single story by id.
func (h *StoryHandler) GetStory(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"story": story})
}

// MarkSeen records that the viewer has seen a story. Seeing it twice is
// fine and recorded once.
func (h *StoryHandler) MarkSeen(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	storyID := c.Param("id")
	if _, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID); err != nil {
		return httpError(err)
	}

	err := h.storyRepository.MarkSeen(&models.StorySeen{
		StoryID: storyID,
		UserID:  userID,
		SeenAt:  time.Now(),
	})
	if err != nil && !isConflict(err) {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Story marked as seen"})
}

// ReactToStory adds an emoji reaction to a story.
func (h *StoryHandler) ReactToStory(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	storyID := c.Param("id")
	if _, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID); err != nil {
		return httpError(err)
	}

	var req models.ReactToStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.storyRepository.AddReaction(&models.StoryReaction{
		StoryID:  storyID,
		UserID:   userID,
		Reaction: req.Reaction,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Reaction added"})
}
