package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
)

// CommentHandler handles comment HTTP requests for posts and reels.
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	reelRepository         repositories.ReelRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	reelRepo repositories.ReelRepository,
	notificationRepo repositories.NotificationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		reelRepository:         reelRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:targetType/:id/comments", h.CreateComment)
	g.GET("/:targetType/:id/comments", h.GetComments)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// resolveCommentTarget validates the commentable target and returns its
// owner for notification purposes.
func (h *CommentHandler) resolveCommentTarget(c echo.Context) (string, uint, uint, *echo.HTTPError) {
	var targetType string
	switch c.Param("targetType") {
	case "posts":
		targetType = models.TargetPost
	case "reels":
		targetType = models.TargetReel
	default:
		return "", 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Comments are only supported on posts and reels")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return "", 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid target ID")
	}

	var ownerID uint
	switch targetType {
	case models.TargetPost:
		post, err := h.postRepository.GetPostByID(targetID)
		if err != nil {
			return "", 0, 0, httpError(err)
		}
		ownerID = post.UserID
	case models.TargetReel:
		reel, err := h.reelRepository.GetReelByID(targetID)
		if err != nil {
			return "", 0, 0, httpError(err)
		}
		ownerID = reel.UserID
	}

	return targetType, targetID, ownerID, nil
}

// CreateComment adds a top-level comment or, when parent_id is set, a
// reply to an existing comment on the same content item.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetType, targetID, ownerID, httpErr := h.resolveCommentTarget(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := &models.Comment{
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
		ParentID:   req.ParentID,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return httpError(err)
	}

	if ownerID != 0 && ownerID != userID {
		go h.notificationRepository.CreateNotification(&models.Notification{
			Type:        "comment",
			ActorID:     userID,
			RecipientID: ownerID,
			TargetID:    fmt.Sprintf("%d", targetID),
			TargetType:  targetType,
			Message:     fmt.Sprintf("commented on your %s", targetType),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// GetComments returns the full comment tree for a content item: roots in
// posting order, each with its replies nested.
func (h *CommentHandler) GetComments(c echo.Context) error {
	targetType, targetID, _, httpErr := h.resolveCommentTarget(c)
	if httpErr != nil {
		return httpErr
	}

	forest, err := h.commentRepository.CommentsFor(targetType, targetID)
	if err != nil {
		return httpError(err)
	}

	total, err := h.commentRepository.CountFor(targetType, targetID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": forest, "total": total})
}

// DeleteComment removes a comment. Only its author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return httpError(err)
	}
	if comment.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
