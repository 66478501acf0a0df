package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"` // 存库前统一小写
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:admin" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	FindByEmail(email string) (*User, error)
	Create(u *User) error
}
