package domain

import "time"

// DefaultRank is assigned to every newly registered user.
const DefaultRank = 1

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Name         string    `json:"name"`
	Rank         int       `json:"rank" gorm:"column:user_rank;not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
