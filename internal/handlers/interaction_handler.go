package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
)

// InteractionHandler handles likes, saves, views and shares for posts,
// reels and comments.
type InteractionHandler struct {
	interactionRepository  repositories.InteractionRepository
	postRepository         repositories.PostRepository
	reelRepository         repositories.ReelRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(
	interactionRepo repositories.InteractionRepository,
	postRepo repositories.PostRepository,
	reelRepo repositories.ReelRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
) *InteractionHandler {
	return &InteractionHandler{
		interactionRepository:  interactionRepo,
		postRepository:         postRepo,
		reelRepository:         reelRepo,
		commentRepository:      commentRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterInteractionRoutes registers interaction routes. The target
// type is part of the path so one handler set covers posts, reels and
// comments.
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/:targetType/:id/like", h.ToggleLike)
	g.POST("/:targetType/:id/save", h.ToggleSave)
	g.POST("/:targetType/:id/view", h.RecordView)
	g.POST("/:targetType/:id/share", h.Share)
	g.GET("/:targetType/:id/interactions", h.InteractionSummary)
}

// validTargets maps path target types to the kinds allowed on them.
// Comments cannot be viewed, saved or shared.
var validTargets = map[string]map[string]bool{
	models.TargetPost:    {models.KindLike: true, models.KindView: true, models.KindSave: true, models.KindShare: true},
	models.TargetReel:    {models.KindLike: true, models.KindView: true, models.KindSave: true, models.KindShare: true},
	models.TargetComment: {models.KindLike: true},
}

// resolveTarget validates the target type/kind pair and confirms the
// target row exists.
func (h *InteractionHandler) resolveTarget(c echo.Context, kind string) (string, uint, *echo.HTTPError) {
	targetType := c.Param("targetType")
	// The route uses plural path segments.
	switch targetType {
	case "posts":
		targetType = models.TargetPost
	case "reels":
		targetType = models.TargetReel
	case "comments":
		targetType = models.TargetComment
	default:
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "Unknown target type")
	}

	if !validTargets[targetType][kind] {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Cannot %s a %s", kind, targetType))
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid target ID")
	}

	switch targetType {
	case models.TargetPost:
		if _, err := h.postRepository.GetPostByID(targetID); err != nil {
			return "", 0, httpError(err)
		}
	case models.TargetReel:
		if _, err := h.reelRepository.GetReelByID(targetID); err != nil {
			return "", 0, httpError(err)
		}
	case models.TargetComment:
		if _, err := h.commentRepository.GetCommentByID(targetID); err != nil {
			return "", 0, httpError(err)
		}
	}

	return targetType, targetID, nil
}

// ToggleLike flips the viewer's like on the target and returns the
// resulting state with a fresh count.
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
	return h.toggle(c, models.KindLike)
}

// ToggleSave flips the viewer's save on the target.
func (h *InteractionHandler) ToggleSave(c echo.Context) error {
	return h.toggle(c, models.KindSave)
}

func (h *InteractionHandler) toggle(c echo.Context, kind string) error {
	actorID := getUserIDFromContext(c)
	if actorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetType, targetID, httpErr := h.resolveTarget(c, kind)
	if httpErr != nil {
		return httpErr
	}

	outcome, err := h.interactionRepository.Toggle(actorID, targetType, targetID, kind)
	if err != nil {
		return httpError(err)
	}

	count, err := h.interactionRepository.Count(targetType, targetID, kind)
	if err != nil {
		return httpError(err)
	}

	if kind == models.KindLike && outcome == models.ToggleAdded {
		h.notifyLike(actorID, targetType, targetID)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"outcome": outcome,
		"active":  outcome == models.ToggleAdded,
		"count":   count,
	})
}

// notifyLike tells the content owner about a new like, fire-and-forget.
func (h *InteractionHandler) notifyLike(actorID uint, targetType string, targetID uint) {
	var ownerID uint
	switch targetType {
	case models.TargetPost:
		if post, err := h.postRepository.GetPostByID(targetID); err == nil {
			ownerID = post.UserID
		}
	case models.TargetReel:
		if reel, err := h.reelRepository.GetReelByID(targetID); err == nil {
			ownerID = reel.UserID
		}
	case models.TargetComment:
		if comment, err := h.commentRepository.GetCommentByID(targetID); err == nil {
			ownerID = comment.UserID
		}
	}
	if ownerID == 0 || ownerID == actorID {
		return
	}
	go h.notificationRepository.CreateNotification(&models.Notification{
		Type:        "like",
		ActorID:     actorID,
		RecipientID: ownerID,
		TargetID:    fmt.Sprintf("%d", targetID),
		TargetType:  targetType,
		Message:     fmt.Sprintf("liked your %s", targetType),
	})
}

// RecordView registers a view. Repeat views by the same user are
// acknowledged but counted once.
func (h *InteractionHandler) RecordView(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetType, targetID, httpErr := h.resolveTarget(c, models.KindView)
	if httpErr != nil {
		return httpErr
	}

	first, err := h.interactionRepository.RecordView(actorID, targetType, targetID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"counted": first})
}

// Share records a share toward a destination. Sharing the same target
// to the same destination twice is a conflict; distinct destinations
// each count.
func (h *InteractionHandler) Share(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetType, targetID, httpErr := h.resolveTarget(c, models.KindShare)
	if httpErr != nil {
		return httpErr
	}

	var req models.ShareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.interactionRepository.CreateShare(actorID, targetType, targetID, req.Destination); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Shared successfully"})
}

// InteractionSummary returns counts plus the viewer's own like/save
// state for the target.
func (h *InteractionHandler) InteractionSummary(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetType, targetID, httpErr := h.resolveTarget(c, models.KindLike)
	if httpErr != nil {
		return httpErr
	}

	likeCount, err := h.interactionRepository.Count(targetType, targetID, models.KindLike)
	if err != nil {
		return httpError(err)
	}
	liked, err := h.interactionRepository.IsSetBy(viewerID, targetType, targetID, models.KindLike)
	if err != nil {
		return httpError(err)
	}

	resp := echo.Map{
		"like_count": likeCount,
		"is_liked":   liked,
	}

	if targetType != models.TargetComment {
		saved, err := h.interactionRepository.IsSetBy(viewerID, targetType, targetID, models.KindSave)
		if err != nil {
			return httpError(err)
		}
		shareCount, err := h.interactionRepository.Count(targetType, targetID, models.KindShare)
		if err != nil {
			return httpError(err)
		}
		resp["is_saved"] = saved
		resp["share_count"] = shareCount
	}

	return c.JSON(http.StatusOK, resp)
}
