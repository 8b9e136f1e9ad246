package model

import "time"

// User is the single identity record of the service. The password hash
// and the pending reset token never leave the server, hence the json
// skips. Username is a pointer so the unique index admits any number of
// rows without one.
type User struct {
	ID                  uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string  `json:"name,omitempty"`
	Email               string  `gorm:"uniqueIndex;not null" json:"email"`
	Username            *string `gorm:"uniqueIndex" json:"username,omitempty"`
	PasswordHash        string  `gorm:"not null" json:"-"`
	ProfilePicture      string  `json:"profile_picture,omitempty"`
	ForgotPasswordToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
