package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
	"github.com/tahmid-rayat/momentgram/backend/pkg/media"
)

// ReelHandler handles reel HTTP requests
type ReelHandler struct {
	reelRepository repositories.ReelRepository
	mediaStore     media.Store
}

// NewReelHandler creates a new ReelHandler
func NewReelHandler(reelRepo repositories.ReelRepository, mediaStore media.Store) *ReelHandler {
	return &ReelHandler{
		reelRepository: reelRepo,
		mediaStore:     mediaStore,
	}
}

// RegisterReelRoutes registers reel-related routes
func (h *ReelHandler) RegisterReelRoutes(g *echo.Group) {
	g.POST("/reels", h.CreateReel)
	g.GET("/reels/:id", h.GetReel)
	g.GET("/users/:id/reels", h.GetUserReels)
	g.PUT("/reels/:id/archive", h.ArchiveReel)
	g.PUT("/reels/:id/unarchive", h.UnarchiveReel)
	g.DELETE("/reels/:id", h.DeleteReel)
}

// CreateReel creates a reel from a multipart form with a caption and a
// single "video" file.
func (h *ReelHandler) CreateReel(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	caption := c.FormValue("caption")
	if len(caption) > 2200 {
		return echo.NewHTTPError(http.StatusBadRequest, "Caption too long")
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A video file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read video file")
	}
	defer src.Close()

	ctx := c.Request().Context()
	asset, err := h.mediaStore.Upload(ctx, src, "reels")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload video")
	}

	reel := &models.Reel{
		UserID:   userID,
		Caption:  caption,
		VideoURL: asset.URL,
		AssetID:  asset.AssetID,
	}
	if err := h.reelRepository.CreateReel(reel); err != nil {
		h.mediaStore.DeleteBestEffort(ctx, asset.AssetID, "video")
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"reel": reel})
}

// GetReel returns a single reel.
func (h *ReelHandler) GetReel(c echo.Context) error {
	reelID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
	}

	reel, err := h.reelRepository.GetReelByID(reelID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"reel": reel})
}

// GetUserReels returns a user's reels, newest first.
func (h *ReelHandler) GetUserReels(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := parsePaging(c)
	reels, err := h.reelRepository.GetReelsByUserID(userID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"reels": reels, "count": len(reels)})
}

// ArchiveReel hides a reel from the reels feed without deleting it.
func (h *ReelHandler) ArchiveReel(c echo.Context) error {
	return h.setArchived(c, true)
}

// UnarchiveReel returns a reel to the reels feed.
func (h *ReelHandler) UnarchiveReel(c echo.Context) error {
	return h.setArchived(c, false)
}

func (h *ReelHandler) setArchived(c echo.Context, archived bool) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	reelID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
	}

	reel, err := h.reelRepository.GetReelByID(reelID)
	if err != nil {
		return httpError(err)
	}
	if reel.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only manage your own reels")
	}

	if err := h.reelRepository.SetArchived(reelID, archived); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Reel updated successfully"})
}

// DeleteReel removes a reel, its comments and interactions, then cleans
// up the video asset.
func (h *ReelHandler) DeleteReel(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	reelID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
	}

	reel, err := h.reelRepository.GetReelByID(reelID)
	if err != nil {
		return httpError(err)
	}
	if reel.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own reels")
	}

	if err := h.reelRepository.DeleteReel(reelID); err != nil {
		return httpError(err)
	}

	h.mediaStore.DeleteBestEffort(c.Request().Context(), reel.AssetID, "video")

	return c.JSON(http.StatusOK, echo.Map{"message": "Reel deleted successfully"})
}
