package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string
type UserRole string
type AuthProvider string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	AuthProviderEmail    AuthProvider = "email"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFirebase AuthProvider = "firebase"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required,min=2,max=50"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	Phone        string             `json:"phone" bson:"phone"`
	Address      string             `json:"address" bson:"address"`
	Password     string             `json:"-" bson:"password"`
	PhotoURL     string             `json:"photo_url" bson:"photo_url"`
	Role         UserRole           `json:"role" bson:"role" default:"user"`
	Status       UserStatus         `json:"status" bson:"status" default:"active"`
	AuthProvider AuthProvider       `json:"auth_provider" bson:"auth_provider" default:"email"`
	SocialID     string             `json:"social_id" bson:"social_id"`

	// Best-effort presence flag. Flipped on explicit presence writes and on
	// websocket connect/disconnect; there is no heartbeat, so a killed
	// process can leave it stale.
	IsOnline   bool       `json:"is_online" bson:"is_online" default:"false"`
	LastSeenAt *time.Time `json:"last_seen_at" bson:"last_seen_at"`

	LastLoginAt *time.Time `json:"last_login_at" bson:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// PublicProfile is the subset of User safe to hand to other participants
// (chat headers, vehicle owner cards).
type PublicProfile struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	PhotoURL string             `json:"photo_url"`
	IsOnline bool               `json:"is_online"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:       u.ID,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		IsOnline: u.IsOnline,
	}
}
