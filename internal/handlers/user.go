package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/tahmid-rayat/momentgram/backend/internal/repositories"
	"github.com/tahmid-rayat/momentgram/backend/pkg/media"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	mediaStore       media.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, mediaStore media.Store) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		mediaStore:       mediaStore,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me", h.UpdateProfile)
	g.PUT("/me/privacy", h.SetPrivacy)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetMe returns the authenticated user's own profile with follow counts.
func (h *UserHandler) GetMe(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	followers, err := h.followRepository.GetFollowersCount(userID)
	if err != nil {
		return httpError(err)
	}
	following, err := h.followRepository.GetFollowingCount(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"followers_count": followers,
		"following_count": following,
	})
}

// UpdateProfile applies the present fields of a partial update, and
// optionally replaces the profile picture when a "profile_pic" file is
// attached.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updates := req.Updates()

	var oldAssetID string
	if fileHeader, err := c.FormFile("profile_pic"); err == nil {
		current, err := h.userRepository.GetUserByID(userID)
		if err != nil {
			return httpError(err)
		}
		oldAssetID = current.ProfilePicAssetID

		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read profile picture")
		}
		defer src.Close()

		asset, err := h.mediaStore.Upload(c.Request().Context(), src, "profiles")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload profile picture")
		}
		updates["profile_pic"] = asset.URL
		updates["profile_pic_asset_id"] = asset.AssetID

		if err := h.userRepository.UpdateFields(userID, updates); err != nil {
			h.mediaStore.DeleteBestEffort(c.Request().Context(), asset.AssetID, "image")
			return httpError(err)
		}
		// The old picture is only removed once the new one is committed.
		h.mediaStore.DeleteBestEffort(c.Request().Context(), oldAssetID, "image")
	} else {
		if len(updates) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "No fields to update")
		}
		if err := h.userRepository.UpdateFields(userID, updates); err != nil {
			return httpError(err)
		}
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// SetPrivacy toggles the account between public and private. Existing
// followers are unaffected; the change only governs future follows.
func (h *UserHandler) SetPrivacy(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.SetPrivacyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.SetPrivacy(userID, *req.IsPrivate); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"is_private": *req.IsPrivate})
}

// GetUser returns a user's public profile with follow counts and the
// viewer's follow state.
func (h *UserHandler) GetUser(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		return httpError(err)
	}

	followers, err := h.followRepository.GetFollowersCount(targetID)
	if err != nil {
		return httpError(err)
	}
	following, err := h.followRepository.GetFollowingCount(targetID)
	if err != nil {
		return httpError(err)
	}

	isFollowing := false
	if viewerID != 0 && viewerID != targetID {
		isFollowing, err = h.followRepository.IsFollowing(viewerID, targetID)
		if err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"followers_count": followers,
		"following_count": following,
		"is_following":    isFollowing,
	})
}

// SearchUsers searches users by username or full name.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return httpError(err)
	}

	results := make([]models.UserCompact, 0, len(users))
	for i := range users {
		results = append(results, users[i].ToCompact())
	}

	return c.JSON(http.StatusOK, echo.Map{"users": results, "count": len(results)})
}
