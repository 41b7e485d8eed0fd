package repositories

import (
	"errors"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// ReelRepository defines the interface for reel data operations
type ReelRepository interface {
	CreateReel(reel *models.Reel) error
	GetReelByID(id uint) (*models.Reel, error)
	GetReelsByUserID(userID uint, page, limit int) ([]models.Reel, error)
	SetArchived(id uint, archived bool) error
	DeleteReel(id uint) error
}

// PostgresReelRepository implements ReelRepository for PostgreSQL
type PostgresReelRepository struct {
	db *gorm.DB
}

func NewPostgresReelRepository(db *gorm.DB) *PostgresReelRepository {
	return &PostgresReelRepository{db: db}
}

func (r *PostgresReelRepository) CreateReel(reel *models.Reel) error {
	if err := r.db.Create(reel).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (r *PostgresReelRepository) GetReelByID(id uint) (*models.Reel, error) {
	var reel models.Reel
	if err := r.db.First(&reel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reel not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &reel, nil
}

func (r *PostgresReelRepository) GetReelsByUserID(userID uint, page, limit int) ([]models.Reel, error) {
	page, limit = clampPage(page, limit)
	var reels []models.Reel
	err := r.db.Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&reels).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reels, nil
}

func (r *PostgresReelRepository) SetArchived(id uint, archived bool) error {
	err := r.db.Model(&models.Reel{}).Where("id = ?", id).Update("is_archived", archived).Error
	return apperrors.FromStorage(err, "reel not found", "")
}

// DeleteReel removes the reel with its comments and interaction edges.
func (r *PostgresReelRepository) DeleteReel(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Reel{}, id)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("reel not found")
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetReel, id).
			Delete(&models.Comment{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetReel, id).
			Delete(&models.Interaction{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}
