package store

import (
	"sort"
	"sync"
	"time"

	"encoraja/pkg/domain"
)

// MemoryStore fulfills the Store contract with process-local slices. Data
// does not survive a restart and is not shared across instances; it exists
// as a fallback for deployments without a persistent database. Reads are
// linear scans, mirroring the JSON-array fallback it replaces. An optional
// per-operation delay emulates network latency.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []domain.User
	cards     []domain.Card
	slides    []domain.CardSlide
	reactions []domain.Reaction
	latency   time.Duration
}

// NewMemoryStore initializes an empty in-memory store without latency.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithLatency initializes a store that sleeps before every
// operation to emulate a remote backend.
func NewMemoryStoreWithLatency(latency time.Duration) *MemoryStore {
	return &MemoryStore{latency: latency}
}

func (m *MemoryStore) simulateDelay() {
	if m.latency > 0 {
		time.Sleep(m.latency)
	}
}

// CreateUser appends the user, assigning id and creation timestamp.
func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.simulateDelay()
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = NewID()
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, u)
	return u, nil
}

// FindUserByEmail looks up a user by email.
func (m *MemoryStore) FindUserByEmail(email string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Email == email })
}

// FindUserByUsername looks up a user by username.
func (m *MemoryStore) FindUserByUsername(username string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Username != "" && u.Username == username })
}

// FindUserByPhone looks up a user by phone number.
func (m *MemoryStore) FindUserByPhone(phoneNumber string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.PhoneNumber != "" && u.PhoneNumber == phoneNumber })
}

// FindUserByID returns a user by ID.
func (m *MemoryStore) FindUserByID(id string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.ID == id })
}

func (m *MemoryStore) findUser(match func(domain.User) bool) (domain.User, bool, error) {
	m.simulateDelay()
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// CreateCard appends the card and its slides, assigning fresh ids.
func (m *MemoryStore) CreateCard(c domain.Card) (domain.Card, error) {
	m.simulateDelay()
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = NewID()
	c.CreatedAt = time.Now().UTC()
	c.Views = 0
	for i := range c.Slides {
		c.Slides[i].ID = NewID()
		c.Slides[i].CardID = c.ID
		m.slides = append(m.slides, c.Slides[i])
	}
	stored := c
	stored.Slides = nil
	stored.Reactions = nil
	m.cards = append(m.cards, stored)
	return c, nil
}

// GetCard retrieves a card with its slides ordered by position and its
// reactions attached.
func (m *MemoryStore) GetCard(id string) (domain.Card, bool, error) {
	m.simulateDelay()
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cards {
		if c.ID == id {
			return m.assemble(c), true, nil
		}
	}
	return domain.Card{}, false, nil
}

// GetUserCards returns the user's cards, newest first.
func (m *MemoryStore) GetUserCards(userID string) ([]domain.Card, error) {
	m.simulateDelay()
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cards []domain.Card
	for _, c := range m.cards {
		if c.UserID == userID {
			cards = append(cards, m.assemble(c))
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
	return cards, nil
}

// IncrementCardViews advances the view counter by exactly one.
func (m *MemoryStore) IncrementCardViews(id string) error {
	m.simulateDelay()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].ID == id {
			m.cards[i].Views++
			return nil
		}
	}
	return nil
}

// AddReaction appends a reaction, assigning id and timestamp.
func (m *MemoryStore) AddReaction(r domain.Reaction) error {
	m.simulateDelay()
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = NewID()
	r.CreatedAt = time.Now().UTC()
	m.reactions = append(m.reactions, r)
	return nil
}

// assemble joins slides and reactions onto a card copy. Caller holds m.mu.
func (m *MemoryStore) assemble(c domain.Card) domain.Card {
	slides := make([]domain.CardSlide, 0)
	for _, s := range m.slides {
		if s.CardID == c.ID {
			slides = append(slides, s)
		}
	}
	sort.SliceStable(slides, func(i, j int) bool { return slides[i].Order < slides[j].Order })
	reactions := make([]domain.Reaction, 0)
	for _, r := range m.reactions {
		if r.CardID == c.ID {
			reactions = append(reactions, r)
		}
	}
	c.Slides = slides
	c.Reactions = reactions
	return c
}
