package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           string  `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Username     *string `gorm:"uniqueIndex"`
	PhoneNumber  *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	Name         string
	CreatedAt    time.Time `gorm:"not null"`
}

type CardModel struct {
	ID              string `gorm:"primaryKey"`
	UserID          *string
	Author          string `gorm:"not null"`
	Message         string
	BackgroundURL   string
	BackgroundColor string
	FontFamily      string
	TextColor       string
	FontSize        int
	TextAlign       string
	AudioURL        string
	VideoURL        string
	RevealAt        *time.Time
	ThemeID         string
	Theme           datatypes.JSON   `gorm:"type:jsonb"`
	Views           int64            `gorm:"not null;default:0"`
	IsPublic        bool             `gorm:"not null"`
	Slides          []CardSlideModel `gorm:"foreignKey:CardID"`
	Reactions       []ReactionModel  `gorm:"foreignKey:CardID"`
	CreatedAt       time.Time        `gorm:"not null;index"`
}

type CardSlideModel struct {
	ID              string `gorm:"primaryKey"`
	CardID          string `gorm:"not null;index"`
	Content         string `gorm:"type:text"`
	MediaURL        string
	MediaType       string
	BackgroundURL   string
	BackgroundColor string
	FontFamily      string
	TextColor       string
	FontSize        int
	TextAlign       string
	Order           int `gorm:"column:slide_order;not null"`
}

type ReactionModel struct {
	ID        string    `gorm:"primaryKey"`
	CardID    string    `gorm:"not null;index"`
	Type      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
