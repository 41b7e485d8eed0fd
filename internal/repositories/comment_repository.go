package repositories

import (
	"errors"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository stores comments for posts and reels in one shared
// table and serves the threaded retrieval.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	CommentsFor(targetType string, targetID uint) ([]*models.CommentNode, error)
	DeleteComment(id uint) error
	CountFor(targetType string, targetID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts a comment. A reply's parent must be a comment
// on the same content item; anything else is NotFound.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if comment.ParentID != nil {
			var count int64
			err := tx.Model(&models.Comment{}).
				Where("id = ? AND target_type = ? AND target_id = ?",
					*comment.ParentID, comment.TargetType, comment.TargetID).
				Count(&count).Error
			if err != nil {
				return apperrors.Internal(err)
			}
			if count == 0 {
				return apperrors.NotFound("parent comment not found")
			}
		}
		if err := tx.Create(comment).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &comment, nil
}

// CommentsFor fetches the flat chronological rows (author join + like
// aggregate in one query) and rebuilds the forest.
func (r *PostgresCommentRepository) CommentsFor(targetType string, targetID uint) ([]*models.CommentNode, error) {
	var rows []models.CommentNodeRow
	err := r.db.Table("comments c").
		Select(`c.id, c.parent_id, c.content, c.created_at,
			u.id AS author_id, u.username, u.full_name, u.profile_pic,
			COUNT(l.id) AS like_count`).
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("LEFT JOIN interactions l ON l.target_type = ? AND l.target_id = c.id AND l.kind = ?",
			models.TargetComment, models.KindLike).
		Where("c.target_type = ? AND c.target_id = ?", targetType, targetID).
		Group("c.id, c.parent_id, c.content, c.created_at, u.id, u.username, u.full_name, u.profile_pic").
		Order("c.created_at ASC, c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return BuildCommentForest(rows), nil
}

func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

func (r *PostgresCommentRepository) CountFor(targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}
