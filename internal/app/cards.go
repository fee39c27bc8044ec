package app

import (
	"log/slog"
	"time"

	"encoraja/pkg/domain"
)

// SlideInput is one page of the card creation payload.
type SlideInput struct {
	Content         string `json:"content"`
	MediaURL        string `json:"mediaUrl"`
	MediaType       string `json:"mediaType"`
	BackgroundURL   string `json:"backgroundUrl"`
	BackgroundColor string `json:"backgroundColor"`
	FontFamily      string `json:"fontFamily"`
	TextColor       string `json:"textColor"`
	FontSize        int    `json:"fontSize"`
	TextAlign       string `json:"textAlign"`
}

// CreateCardInput is the full card creation payload. The top-level style
// fields are the fallback used when the slide list is empty; RevealAt is an
// RFC 3339 datetime or empty.
type CreateCardInput struct {
	UserID          string            `json:"userId"`
	Author          string            `json:"author"`
	Message         string            `json:"message"`
	Slides          []SlideInput      `json:"slides"`
	BackgroundURL   string            `json:"backgroundUrl"`
	BackgroundColor string            `json:"backgroundColor"`
	FontFamily      string            `json:"fontFamily"`
	TextColor       string            `json:"textColor"`
	FontSize        int               `json:"fontSize"`
	TextAlign       string            `json:"textAlign"`
	IsPublic        bool              `json:"isPublic"`
	AudioURL        string            `json:"audioUrl"`
	VideoURL        string            `json:"videoUrl"`
	RevealAt        string            `json:"revealAt"`
	ThemeID         string            `json:"themeId"`
	Theme           map[string]string `json:"theme"`
}

// ReactionView is the client-facing reaction shape.
type ReactionView struct {
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
}

// CardView is the client-facing card shape: dates are epoch milliseconds so
// the value transfers to a rendering client unchanged. While the reveal gate
// is closed, content fields are withheld and Locked is set.
type CardView struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId,omitempty"`
	Author          string             `json:"author"`
	Message         string             `json:"message"`
	Slides          []domain.CardSlide `json:"slides"`
	BackgroundURL   string             `json:"backgroundUrl,omitempty"`
	BackgroundColor string             `json:"backgroundColor,omitempty"`
	FontFamily      string             `json:"fontFamily"`
	TextColor       string             `json:"textColor"`
	FontSize        int                `json:"fontSize"`
	TextAlign       string             `json:"textAlign"`
	AudioURL        string             `json:"audioUrl,omitempty"`
	VideoURL        string             `json:"videoUrl,omitempty"`
	ThemeID         string             `json:"themeId,omitempty"`
	Theme           map[string]string  `json:"theme,omitempty"`
	IsPublic        bool               `json:"isPublic"`
	Views           int64              `json:"views"`
	Reactions       []ReactionView     `json:"reactions"`
	CreatedAt       int64              `json:"createdAt"`
	RevealAt        *int64             `json:"revealAt"`
	Locked          bool               `json:"locked"`
}

// CreateCard persists the card with its slides and returns the new id.
// Backend failures are logged and replaced with a generic error.
func (a *App) CreateCard(in CreateCardInput) (string, error) {
	if in.Message == "" && (len(in.Slides) == 0 || in.Slides[0].Content == "") {
		return "", ErrMessageRequired
	}
	var revealAt *time.Time
	if in.RevealAt != "" {
		parsed, err := time.Parse(time.RFC3339, in.RevealAt)
		if err != nil {
			return "", ErrCreateCardFailed
		}
		revealAt = &parsed
	}
	fontSize := in.FontSize
	if fontSize == 0 {
		fontSize = domain.DefaultFontSize
	}
	textAlign := in.TextAlign
	if textAlign == "" {
		textAlign = domain.AlignCenter
	}
	slides := make([]domain.CardSlide, 0, len(in.Slides))
	for i, s := range in.Slides {
		slides = append(slides, domain.CardSlide{
			Content:         s.Content,
			MediaURL:        s.MediaURL,
			MediaType:       s.MediaType,
			BackgroundURL:   s.BackgroundURL,
			BackgroundColor: s.BackgroundColor,
			FontFamily:      s.FontFamily,
			TextColor:       s.TextColor,
			FontSize:        s.FontSize,
			TextAlign:       s.TextAlign,
			Order:           i,
		})
	}
	card, err := a.store.CreateCard(domain.Card{
		UserID:          in.UserID,
		Author:          in.Author,
		Message:         in.Message,
		BackgroundURL:   in.BackgroundURL,
		BackgroundColor: in.BackgroundColor,
		FontFamily:      in.FontFamily,
		TextColor:       in.TextColor,
		FontSize:        fontSize,
		TextAlign:       textAlign,
		Slides:          slides,
		AudioURL:        in.AudioURL,
		VideoURL:        in.VideoURL,
		RevealAt:        revealAt,
		ThemeID:         in.ThemeID,
		Theme:           in.Theme,
		IsPublic:        in.IsPublic,
	})
	if err != nil {
		slog.Error("create card failed", "err", err)
		return "", ErrCreateCardFailed
	}
	return card.ID, nil
}

// ViewCard fetches a card for display. It returns nil on not-found and on
// backend failure so the viewing page can render its own empty state.
func (a *App) ViewCard(id string) *CardView {
	card, ok, err := a.store.GetCard(id)
	if err != nil {
		slog.Error("fetch card failed", "card_id", id, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	view := cardView(card)
	return &view
}

// UserCards returns the user's cards newest first, empty on failure.
func (a *App) UserCards(userID string) []CardView {
	cards, err := a.store.GetUserCards(userID)
	if err != nil {
		slog.Error("fetch user cards failed", "user_id", userID, "err", err)
		return []CardView{}
	}
	views := make([]CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, cardView(card))
	}
	return views
}

// CountView advances the card's view counter, best-effort: failures are
// logged and swallowed so a lost count never breaks page rendering. Views
// are not counted while the reveal gate is closed.
func (a *App) CountView(id string) {
	card, ok, err := a.store.GetCard(id)
	if err != nil {
		slog.Error("increment views failed", "card_id", id, "err", err)
		return
	}
	if !ok || locked(card.RevealAt) {
		return
	}
	if err := a.store.IncrementCardViews(id); err != nil {
		slog.Error("increment views failed", "card_id", id, "err", err)
	}
}

// React appends a reaction, best-effort like CountView.
func (a *App) React(cardID, reactionType string) {
	if reactionType == "" {
		return
	}
	err := a.store.AddReaction(domain.Reaction{CardID: cardID, Type: reactionType})
	if err != nil {
		slog.Error("add reaction failed", "card_id", cardID, "err", err)
	}
}

func locked(revealAt *time.Time) bool {
	return revealAt != nil && revealAt.After(time.Now())
}

func cardView(card domain.Card) CardView {
	reactions := make([]ReactionView, 0, len(card.Reactions))
	for _, r := range card.Reactions {
		reactions = append(reactions, ReactionView{Type: r.Type, CreatedAt: r.CreatedAt.UnixMilli()})
	}
	var revealAt *int64
	if card.RevealAt != nil {
		millis := card.RevealAt.UnixMilli()
		revealAt = &millis
	}
	view := CardView{
		ID:              card.ID,
		UserID:          card.UserID,
		Author:          card.Author,
		Message:         card.Message,
		Slides:          card.Slides,
		BackgroundURL:   card.BackgroundURL,
		BackgroundColor: card.BackgroundColor,
		FontFamily:      card.FontFamily,
		TextColor:       card.TextColor,
		FontSize:        card.FontSize,
		TextAlign:       card.TextAlign,
		AudioURL:        card.AudioURL,
		VideoURL:        card.VideoURL,
		ThemeID:         card.ThemeID,
		Theme:           card.Theme,
		IsPublic:        card.IsPublic,
		Views:           card.Views,
		Reactions:       reactions,
		CreatedAt:       card.CreatedAt.UnixMilli(),
		RevealAt:        revealAt,
		Locked:          locked(card.RevealAt),
	}
	if view.Locked {
		view.Message = ""
		view.Slides = []domain.CardSlide{}
		view.AudioURL = ""
		view.VideoURL = ""
	}
	return view
}
