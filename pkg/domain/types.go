package domain

import "time"

// Card text alignment values accepted from clients.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// DefaultFontSize is applied when a card payload carries no font size.
const DefaultFontSize = 24

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Card is a shareable multi-slide greeting artifact. The top-level message
// and style fields act as a fallback when the slide list is empty.
type Card struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId,omitempty"`
	Author          string            `json:"author"`
	Message         string            `json:"message"`
	BackgroundURL   string            `json:"backgroundUrl,omitempty"`
	BackgroundColor string            `json:"backgroundColor,omitempty"`
	FontFamily      string            `json:"fontFamily"`
	TextColor       string            `json:"textColor"`
	FontSize        int               `json:"fontSize"`
	TextAlign       string            `json:"textAlign"`
	Slides          []CardSlide       `json:"slides"`
	AudioURL        string            `json:"audioUrl,omitempty"`
	VideoURL        string            `json:"videoUrl,omitempty"`
	RevealAt        *time.Time        `json:"revealAt,omitempty"`
	ThemeID         string            `json:"themeId,omitempty"`
	Theme           map[string]string `json:"theme,omitempty"`
	Views           int64             `json:"views"`
	IsPublic        bool              `json:"isPublic"`
	Reactions       []Reaction        `json:"reactions"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CardSlide is one ordered page of a card. Style fields override the card
// fallback for that slide only.
type CardSlide struct {
	ID              string `json:"id"`
	CardID          string `json:"cardId"`
	Content         string `json:"content"`
	MediaURL        string `json:"mediaUrl,omitempty"`
	MediaType       string `json:"mediaType,omitempty"`
	BackgroundURL   string `json:"backgroundUrl,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	FontSize        int    `json:"fontSize,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"`
	Order           int    `json:"order"`
}

// Reaction is an anonymous append-only viewer response. Type is a free-form
// tag such as "LIKE", "LOVE" or "SMILE"; viewers may react multiple times.
type Reaction struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
