package models

import "time"

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:OwnerID" json:"tasks,omitempty"`
}
