package model

import "time"

// Role constants
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents an account that can authenticate against the API
type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"type:varchar(255);not null" json:"username"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"` // Omit password hash from JSON requests/responses
	Role      string     `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// RefreshToken stores long-lived opaque tokens allowing users to request
// new access tokens after expiry. JwtID holds the jti claim of the access
// token the row is currently paired with; it is rewritten on every refresh
// while the Token value itself is reused.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	JwtID     string    `gorm:"type:varchar(64);not null" json:"jwt_id"`
	IsRevoked bool      `gorm:"not null;default:false" json:"is_revoked"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
