package model

import "time"

// Team roles.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
)

// Profile holds the display identity of a team member.
type Profile struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole maps a user to their role. A user without a row is treated as a
// manager.
type UserRole struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanySetting is a single-row table holding the company name shown in
// the UI header.
type CompanySetting struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CompanyName string    `json:"company_name" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
