package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"encoraja/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
// Uniqueness of email/username/phone is enforced by the schema; callers are
// expected to run existence checks first so users see a friendly duplicate
// message instead of a raw constraint violation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &CardModel{}, &CardSlideModel{}, &ReactionModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateUser inserts the user, assigning id and creation timestamp.
func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	u.ID = NewID()
	u.CreatedAt = time.Now().UTC()
	model := userToModel(u)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// FindUserByEmail looks up a user by email.
func (s *GormStore) FindUserByEmail(email string) (domain.User, bool, error) {
	return s.findUser("email = ?", email)
}

// FindUserByUsername looks up a user by username.
func (s *GormStore) FindUserByUsername(username string) (domain.User, bool, error) {
	return s.findUser("username = ?", username)
}

// FindUserByPhone looks up a user by phone number.
func (s *GormStore) FindUserByPhone(phoneNumber string) (domain.User, bool, error) {
	return s.findUser("phone_number = ?", phoneNumber)
}

// FindUserByID returns a user by ID.
func (s *GormStore) FindUserByID(id string) (domain.User, bool, error) {
	return s.findUser("id = ?", id)
}

func (s *GormStore) findUser(query string, arg any) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where(query, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// CreateCard inserts a card together with its nested slides in one logical
// create. Slide ids and the card id are assigned here; views start at zero.
func (s *GormStore) CreateCard(c domain.Card) (domain.Card, error) {
	c.ID = NewID()
	c.CreatedAt = time.Now().UTC()
	c.Views = 0
	for i := range c.Slides {
		c.Slides[i].ID = NewID()
		c.Slides[i].CardID = c.ID
	}
	model, err := cardToModel(c)
	if err != nil {
		return domain.Card{}, err
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}
	return c, nil
}

// GetCard retrieves a card with slides ordered by their explicit position
// and all reactions attached.
func (s *GormStore) GetCard(id string) (domain.Card, bool, error) {
	var model CardModel
	err := s.db.
		Preload("Slides", func(db *gorm.DB) *gorm.DB { return db.Order("slide_order ASC") }).
		Preload("Reactions").
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Card{}, false, nil
		}
		return domain.Card{}, false, err
	}
	card, err := cardFromModel(model)
	if err != nil {
		return domain.Card{}, false, err
	}
	return card, true, nil
}

// GetUserCards returns the user's cards, newest first.
func (s *GormStore) GetUserCards(userID string) ([]domain.Card, error) {
	var models []CardModel
	err := s.db.
		Preload("Slides", func(db *gorm.DB) *gorm.DB { return db.Order("slide_order ASC") }).
		Preload("Reactions").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	cards := make([]domain.Card, 0, len(models))
	for _, m := range models {
		card, err := cardFromModel(m)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// IncrementCardViews advances the view counter by exactly one. The
// increment is a single-row expression, so atomicity is delegated to the
// storage engine.
func (s *GormStore) IncrementCardViews(id string) error {
	return s.db.Model(&CardModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// AddReaction appends a reaction record, assigning id and timestamp.
func (s *GormStore) AddReaction(r domain.Reaction) error {
	r.ID = NewID()
	r.CreatedAt = time.Now().UTC()
	model := reactionToModel(r)
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create reaction: %w", err)
	}
	return nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Username:     optionalString(u.Username),
		PhoneNumber:  optionalString(u.PhoneNumber),
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     stringValue(m.Username),
		PhoneNumber:  stringValue(m.PhoneNumber),
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}
}

func cardToModel(c domain.Card) (CardModel, error) {
	var theme datatypes.JSON
	if len(c.Theme) > 0 {
		raw, err := json.Marshal(c.Theme)
		if err != nil {
			return CardModel{}, fmt.Errorf("encode theme: %w", err)
		}
		theme = datatypes.JSON(raw)
	}
	slides := make([]CardSlideModel, 0, len(c.Slides))
	for _, slide := range c.Slides {
		slides = append(slides, slideToModel(slide))
	}
	return CardModel{
		ID:              c.ID,
		UserID:          optionalString(c.UserID),
		Author:          c.Author,
		Message:         c.Message,
		BackgroundURL:   c.BackgroundURL,
		BackgroundColor: c.BackgroundColor,
		FontFamily:      c.FontFamily,
		TextColor:       c.TextColor,
		FontSize:        c.FontSize,
		TextAlign:       c.TextAlign,
		AudioURL:        c.AudioURL,
		VideoURL:        c.VideoURL,
		RevealAt:        c.RevealAt,
		ThemeID:         c.ThemeID,
		Theme:           theme,
		Views:           c.Views,
		IsPublic:        c.IsPublic,
		Slides:          slides,
		CreatedAt:       c.CreatedAt,
	}, nil
}

func cardFromModel(m CardModel) (domain.Card, error) {
	var theme map[string]string
	if len(m.Theme) > 0 {
		if err := json.Unmarshal(m.Theme, &theme); err != nil {
			return domain.Card{}, fmt.Errorf("decode theme: %w", err)
		}
	}
	slides := make([]domain.CardSlide, 0, len(m.Slides))
	for _, slide := range m.Slides {
		slides = append(slides, slideFromModel(slide))
	}
	reactions := make([]domain.Reaction, 0, len(m.Reactions))
	for _, reaction := range m.Reactions {
		reactions = append(reactions, reactionFromModel(reaction))
	}
	return domain.Card{
		ID:              m.ID,
		UserID:          stringValue(m.UserID),
		Author:          m.Author,
		Message:         m.Message,
		BackgroundURL:   m.BackgroundURL,
		BackgroundColor: m.BackgroundColor,
		FontFamily:      m.FontFamily,
		TextColor:       m.TextColor,
		FontSize:        m.FontSize,
		TextAlign:       m.TextAlign,
		AudioURL:        m.AudioURL,
		VideoURL:        m.VideoURL,
		RevealAt:        m.RevealAt,
		ThemeID:         m.ThemeID,
		Theme:           theme,
		Views:           m.Views,
		IsPublic:        m.IsPublic,
		Slides:          slides,
		Reactions:       reactions,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func slideToModel(s domain.CardSlide) CardSlideModel {
	return CardSlideModel{
		ID:              s.ID,
		CardID:          s.CardID,
		Content:         s.Content,
		MediaURL:        s.MediaURL,
		MediaType:       s.MediaType,
		BackgroundURL:   s.BackgroundURL,
		BackgroundColor: s.BackgroundColor,
		FontFamily:      s.FontFamily,
		TextColor:       s.TextColor,
		FontSize:        s.FontSize,
		TextAlign:       s.TextAlign,
		Order:           s.Order,
	}
}

func slideFromModel(m CardSlideModel) domain.CardSlide {
	return domain.CardSlide{
		ID:              m.ID,
		CardID:          m.CardID,
		Content:         m.Content,
		MediaURL:        m.MediaURL,
		MediaType:       m.MediaType,
		BackgroundURL:   m.BackgroundURL,
		BackgroundColor: m.BackgroundColor,
		FontFamily:      m.FontFamily,
		TextColor:       m.TextColor,
		FontSize:        m.FontSize,
		TextAlign:       m.TextAlign,
		Order:           m.Order,
	}
}

func reactionToModel(r domain.Reaction) ReactionModel {
	return ReactionModel{
		ID:        r.ID,
		CardID:    r.CardID,
		Type:      r.Type,
		CreatedAt: r.CreatedAt,
	}
}

func reactionFromModel(m ReactionModel) domain.Reaction {
	return domain.Reaction{
		ID:        m.ID,
		CardID:    m.CardID,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
