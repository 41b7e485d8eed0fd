package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
)

// FollowHandler handles follow-relationship HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notificationRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/follow-status", h.FollowStatus)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/follow-requests", h.PendingRequests)
	g.POST("/follow-requests/:id/respond", h.RespondToRequest)
}

// Follow creates a follow edge toward a public account, or a pending
// request toward a private one. The response "outcome" tells the client
// which happened.
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID := getUserIDFromContext(c)
	if followerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	outcome, err := h.followRepository.Follow(followerID, followingID)
	if err != nil {
		return httpError(err)
	}

	notifType := "follow"
	message := "started following you"
	if outcome == models.FollowOutcomeRequested {
		notifType = "follow_request"
		message = "requested to follow you"
	}
	go h.notificationRepository.CreateNotification(&models.Notification{
		Type:        notifType,
		ActorID:     followerID,
		RecipientID: followingID,
		TargetID:    fmt.Sprintf("%d", followerID),
		TargetType:  "user",
		Message:     message,
	})

	return c.JSON(http.StatusOK, echo.Map{"outcome": outcome})
}

// Unfollow removes an accepted follow edge.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID := getUserIDFromContext(c)
	if followerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.Unfollow(followerID, followingID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed successfully"})
}

// FollowStatus reports whether the viewer follows the given user.
func (h *FollowHandler) FollowStatus(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, err := h.followRepository.IsFollowing(viewerID, targetID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"is_following": following})
}

// GetFollowers lists a user's followers.
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	followers, err := h.followRepository.GetFollowers(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"followers": followers, "count": len(followers)})
}

// GetFollowing lists the users a user follows.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, err := h.followRepository.GetFollowing(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": following, "count": len(following)})
}

// PendingRequests lists the viewer's incoming pending follow requests,
// newest first.
func (h *FollowHandler) PendingRequests(c echo.Context) error {
	receiverID := getUserIDFromContext(c)
	if receiverID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	requests, err := h.followRepository.PendingRequests(receiverID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"requests": requests, "count": len(requests)})
}

// RespondToRequest accepts or rejects a pending follow request addressed
// to the viewer.
func (h *FollowHandler) RespondToRequest(c echo.Context) error {
	receiverID := getUserIDFromContext(c)
	if receiverID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.RespondFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accept := req.Decision == "accept"
	request, err := h.followRepository.RespondToRequest(requestID, receiverID, accept)
	if err != nil {
		return httpError(err)
	}

	if accept {
		go h.notificationRepository.CreateNotification(&models.Notification{
			Type:        "request_accepted",
			ActorID:     receiverID,
			RecipientID: request.SenderID,
			TargetID:    fmt.Sprintf("%d", receiverID),
			TargetType:  "user",
			Message:     "accepted your follow request",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"request": request})
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
