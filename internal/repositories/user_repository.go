package repositories

import (
	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsersByIDs(ids []uint) (map[uint]models.UserCompact, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	UpdateUser(user *models.User) error
	SetPrivacy(id uint, isPrivate bool) error
	DeleteUser(id uint) error
	SearchUsers(query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.FromStorage(err, "user not found", "username or email already taken")
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, apperrors.FromStorage(err, "user not found", "")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperrors.FromStorage(err, "user not found", "")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, apperrors.FromStorage(err, "user not found", "")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, apperrors.FromStorage(err, "user not found", "")
	}
	return &user, nil
}

// GetUsersByIDs fetches author summaries for a page of content in one query.
func (r *PostgresUserRepository) GetUsersByIDs(ids []uint) (map[uint]models.UserCompact, error) {
	result := make(map[uint]models.UserCompact)
	if len(ids) == 0 {
		return result, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, u := range users {
		result[u.ID] = u.ToCompact()
	}
	return result, nil
}

// UpdateFields writes only the given fields. The caller builds the map
// from present optional fields; nothing is ever string-concatenated.
func (r *PostgresUserRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
	return apperrors.FromStorage(err, "user not found", "username or email already taken")
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperrors.FromStorage(err, "user not found", "username or email already taken")
	}
	return nil
}

func (r *PostgresUserRepository) SetPrivacy(id uint, isPrivate bool) error {
	err := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_private", isPrivate).Error
	return apperrors.FromStorage(err, "user not found", "")
}

func (r *PostgresUserRepository) DeleteUser(id uint) error {
	if err := r.db.Delete(&models.User{}, id).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// SearchUsers searches for users by username or full name (case-insensitive).
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").
		Limit(50).Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}
