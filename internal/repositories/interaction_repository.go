package repositories

import (
	"errors"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository is the idempotent membership ledger behind
// likes, views, saves and shares.
type InteractionRepository interface {
	Toggle(actorID uint, targetType string, targetID uint, kind string) (string, error)
	RecordView(actorID uint, targetType string, targetID uint) (bool, error)
	CreateShare(actorID uint, targetType string, targetID uint, destination string) error
	Count(targetType string, targetID uint, kind string) (int64, error)
	IsSetBy(actorID uint, targetType string, targetID uint, kind string) (bool, error)
	SetTargetIDs(actorID uint, targetType string, targetIDs []uint, kind string) (map[uint]bool, error)
}

// PostgresInteractionRepository implements InteractionRepository
type PostgresInteractionRepository struct {
	db *gorm.DB
}

func NewPostgresInteractionRepository(db *gorm.DB) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{db: db}
}

// counterTables maps interaction targets to the table carrying their
// denormalized view_count/share_count columns.
var counterTables = map[string]string{
	models.TargetPost: "posts",
	models.TargetReel: "reels",
}

// Toggle adds the edge if absent and removes it if present. The
// check-then-act runs in one transaction so concurrent double-clicks by
// the same actor cannot both win; the unique index is the backstop.
func (r *PostgresInteractionRepository) Toggle(actorID uint, targetType string, targetID uint, kind string) (string, error) {
	var outcome string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("actor_id = ? AND target_type = ? AND target_id = ? AND kind = ?",
			actorID, targetType, targetID, kind).Delete(&models.Interaction{})
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected > 0 {
			outcome = models.ToggleRemoved
			return nil
		}

		edge := &models.Interaction{
			ActorID:    actorID,
			TargetType: targetType,
			TargetID:   targetID,
			Kind:       kind,
		}
		if err := tx.Create(edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("interaction already recorded")
			}
			return apperrors.Internal(err)
		}
		outcome = models.ToggleAdded
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// RecordView inserts a view edge once per actor. Repeated views are
// silent no-ops; only a genuine first insert bumps the target's
// denormalized view_count, inside the same transaction. Returns whether
// this call was the first view.
func (r *PostgresInteractionRepository) RecordView(actorID uint, targetType string, targetID uint) (bool, error) {
	table, ok := counterTables[targetType]
	if !ok {
		return false, apperrors.InvalidOperation("views are not supported for this target")
	}

	var first bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		edge := &models.Interaction{
			ActorID:    actorID,
			TargetType: targetType,
			TargetID:   targetID,
			Kind:       models.KindView,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		first = true
		err := tx.Table(table).Where("id = ?", targetID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return first, nil
}

// CreateShare records one share per (actor, target, destination); the
// empty destination is its own slot. A successful share bumps the
// target's share_count in the same transaction.
func (r *PostgresInteractionRepository) CreateShare(actorID uint, targetType string, targetID uint, destination string) error {
	table, ok := counterTables[targetType]
	if !ok {
		return apperrors.InvalidOperation("shares are not supported for this target")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Interaction{}).
			Where("actor_id = ? AND target_type = ? AND target_id = ? AND kind = ? AND destination = ?",
				actorID, targetType, targetID, models.KindShare, destination).
			Count(&count).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		if count > 0 {
			return apperrors.Conflict("already shared to this destination")
		}

		edge := &models.Interaction{
			ActorID:     actorID,
			TargetType:  targetType,
			TargetID:    targetID,
			Kind:        models.KindShare,
			Destination: destination,
		}
		if err := tx.Create(edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("already shared to this destination")
			}
			return apperrors.Internal(err)
		}

		err = tx.Table(table).Where("id = ?", targetID).
			UpdateColumn("share_count", gorm.Expr("share_count + ?", 1)).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

func (r *PostgresInteractionRepository) Count(targetType string, targetID uint, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Interaction{}).
		Where("target_type = ? AND target_id = ? AND kind = ?", targetType, targetID, kind).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

func (r *PostgresInteractionRepository) IsSetBy(actorID uint, targetType string, targetID uint, kind string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Interaction{}).
		Where("actor_id = ? AND target_type = ? AND target_id = ? AND kind = ?",
			actorID, targetType, targetID, kind).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

// SetTargetIDs returns, in one query, which of the given targets the
// actor has an edge of the given kind on. Used for per-page flag maps.
func (r *PostgresInteractionRepository) SetTargetIDs(actorID uint, targetType string, targetIDs []uint, kind string) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(targetIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.Interaction{}).
		Where("actor_id = ? AND target_type = ? AND kind = ? AND target_id IN ?",
			actorID, targetType, kind, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
