package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account in the social graph (PostgreSQL)
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password    string    `json:"-"` // bcrypt hash
	Bio         string    `json:"bio"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the author/actor summary embedded in other responses
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

// UserProfile is a user together with derived follow counts
type UserProfile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio" validate:"max=500"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateUserRequest struct {
	Email string  `json:"email,omitempty" validate:"omitempty,email"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
