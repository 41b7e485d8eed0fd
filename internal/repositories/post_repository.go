package repositories

import (
	"errors"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePostWithMedia(post *models.Post, media []models.PostMedia) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint, page, limit int) ([]models.Post, error)
	UpdateCaption(id uint, caption string) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePostWithMedia persists the post row and its media rows in one
// transaction. Media assets are already uploaded by the time this runs;
// the handler compensates on the external store if this fails.
func (r *PostgresPostRepository) CreatePostWithMedia(post *models.Post, media []models.PostMedia) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return apperrors.Internal(err)
		}
		for i := range media {
			media[i].PostID = post.ID
			media[i].Position = i
		}
		if len(media) > 0 {
			if err := tx.Create(&media).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		post.Media = media
		return nil
	})
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_media.position")
	}).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByUserID(userID uint, page, limit int) ([]models.Post, error) {
	page, limit = clampPage(page, limit)
	var posts []models.Post
	err := r.db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_media.position")
	}).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) UpdateCaption(id uint, caption string) error {
	err := r.db.Model(&models.Post{}).Where("id = ?", id).Update("caption", caption).Error
	return apperrors.FromStorage(err, "post not found", "")
}

// DeletePost removes the post, its media rows, its comments and its
// interaction edges in one transaction.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("post not found")
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostMedia{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetPost, id).
			Delete(&models.Comment{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetPost, id).
			Delete(&models.Interaction{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}
