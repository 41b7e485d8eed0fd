package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account. IsPrivate drives the follow state machine: public
// accounts are followed directly, private accounts go through a request.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Password          string    `json:"-"` // bcrypt hash, never serialized
	FullName          string    `json:"full_name"`
	Bio               string    `json:"bio"`
	ProfilePic        string    `json:"profile_pic"`
	ProfilePicAssetID string    `json:"-"` // media-store asset id, needed for compensating deletes
	IsPrivate         bool      `json:"is_private" gorm:"default:false"`
	// Not unique at the schema level: locally registered accounts all
	// carry the empty string here.
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserCompact is the author/sender projection embedded in feeds,
// comments and pending-request listings.
type UserCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		ProfilePic: u.ProfilePic,
	}
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	FullName string `json:"full_name" form:"full_name" validate:"omitempty,max=80"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries optional fields: a nil pointer means
// "leave unchanged". Only present fields are written.
type UpdateProfileRequest struct {
	Username *string `json:"username" form:"username" validate:"omitempty,min=3,max=30"`
	FullName *string `json:"full_name" form:"full_name" validate:"omitempty,max=80"`
	Bio      *string `json:"bio" form:"bio" validate:"omitempty,max=300"`
}

// Updates returns the field→value map of present fields.
func (r *UpdateProfileRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Username != nil {
		updates["username"] = *r.Username
	}
	if r.FullName != nil {
		updates["full_name"] = *r.FullName
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	return updates
}

type SetPrivacyRequest struct {
	IsPrivate *bool `json:"is_private" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
