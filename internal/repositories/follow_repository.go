package repositories

import (
	"errors"
	"time"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository enforces the follow/request state machine on top of
// the follows and follow_requests tables.
type FollowRepository interface {
	Follow(followerID, followingID uint) (string, error)
	Unfollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	RespondToRequest(requestID, receiverID uint, accept bool) (*models.FollowRequest, error)
	PendingRequests(receiverID uint) ([]models.PendingFollowRequest, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Follow follows a public target directly or files a request against a
// private one. The returned outcome is models.FollowOutcomeFollowing or
// models.FollowOutcomeRequested.
func (r *PostgresFollowRepository) Follow(followerID, followingID uint) (string, error) {
	if followerID == followingID {
		return "", apperrors.InvalidOperation("cannot follow yourself")
	}

	var target models.User
	if err := r.db.First(&target, followingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("user not found")
		}
		return "", apperrors.Internal(err)
	}

	if !target.IsPrivate {
		following, err := r.IsFollowing(followerID, followingID)
		if err != nil {
			return "", err
		}
		if following {
			return "", apperrors.Conflict("already following this user")
		}
		follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := r.db.Create(follow).Error; err != nil {
			// The unique index is the backstop when two identical
			// requests race past the pre-check.
			return "", apperrors.FromStorage(err, "user not found", "already following this user")
		}
		return models.FollowOutcomeFollowing, nil
	}

	// Private account: check-purge-insert must be one transaction so two
	// concurrent attempts cannot both create a pending request.
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.FollowRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status IN ?",
				followerID, followingID, []string{models.RequestPending, models.RequestAccepted}).
			Count(&count).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		if count > 0 {
			return apperrors.Conflict("follow request already sent or already following")
		}

		// A stale rejected request blocks nothing; purge it so the pair
		// has at most one active row again.
		err = tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			followerID, followingID, models.RequestRejected).
			Delete(&models.FollowRequest{}).Error
		if err != nil {
			return apperrors.Internal(err)
		}

		request := &models.FollowRequest{
			SenderID:   followerID,
			ReceiverID: followingID,
			Status:     models.RequestPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return apperrors.FromStorage(err, "user not found", "follow request already sent")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return models.FollowOutcomeRequested, nil
}

// Unfollow deletes the follow edge. The caller is told when there was
// nothing to remove.
func (r *PostgresFollowRepository) Unfollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("not following this user")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

// RespondToRequest accepts or rejects a pending request. Accepting
// inserts the follow edge and flips the status in one transaction:
// either both persist or neither does.
func (r *PostgresFollowRepository) RespondToRequest(requestID, receiverID uint, accept bool) (*models.FollowRequest, error) {
	var request models.FollowRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND status = ?", requestID, models.RequestPending).First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("follow request not found")
			}
			return apperrors.Internal(err)
		}
		if request.ReceiverID != receiverID {
			return apperrors.Forbidden("not authorized to respond to this follow request")
		}

		status := models.RequestRejected
		if accept {
			status = models.RequestAccepted
			follow := &models.Follow{FollowerID: request.SenderID, FollowingID: request.ReceiverID}
			if err := tx.Create(follow).Error; err != nil {
				return apperrors.FromStorage(err, "user not found", "already following this user")
			}
		}
		err = tx.Model(&models.FollowRequest{}).Where("id = ?", requestID).
			Update("status", status).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		request.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// pendingRequestRow is the flat projection of a pending request joined
// with its sender's profile.
type pendingRequestRow struct {
	RequestID  uint      `gorm:"column:request_id"`
	SenderID   uint      `gorm:"column:sender_id"`
	Username   string    `gorm:"column:username"`
	FullName   string    `gorm:"column:full_name"`
	ProfilePic string    `gorm:"column:profile_pic"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// PendingRequests returns the receiver's pending requests, newest first,
// each with the sender's profile summary.
func (r *PostgresFollowRepository) PendingRequests(receiverID uint) ([]models.PendingFollowRequest, error) {
	var rows []pendingRequestRow
	err := r.db.Table("follow_requests fr").
		Select("fr.id AS request_id, u.id AS sender_id, u.username, u.full_name, u.profile_pic, fr.created_at").
		Joins("JOIN users u ON u.id = fr.sender_id").
		Where("fr.receiver_id = ? AND fr.status = ?", receiverID, models.RequestPending).
		Order("fr.created_at DESC, fr.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	requests := make([]models.PendingFollowRequest, len(rows))
	for i, row := range rows {
		requests[i] = models.PendingFollowRequest{
			RequestID: row.RequestID,
			Sender: models.UserCompact{
				ID:         row.SenderID,
				Username:   row.Username,
				FullName:   row.FullName,
				ProfilePic: row.ProfilePic,
			},
			CreatedAt: row.CreatedAt,
		}
	}
	return requests, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ids, nil
}
