package store

import (
	"testing"
	"time"

	"encoraja/pkg/domain"
)

func TestMemoryStoreCreateCardPreservesSlideOrder(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreateCard(domain.Card{
		Author:  "Maria",
		Message: "força",
		Slides: []domain.CardSlide{
			{Content: "primeira", Order: 0},
			{Content: "segunda", Order: 1},
			{Content: "terceira", Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated card id")
	}

	card, ok, err := s.GetCard(created.ID)
	if err != nil || !ok {
		t.Fatalf("get card: ok=%v err=%v", ok, err)
	}
	if len(card.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(card.Slides))
	}
	for i, slide := range card.Slides {
		if slide.Order != i {
			t.Fatalf("slide %d out of order: %d", i, slide.Order)
		}
		if slide.CardID != created.ID {
			t.Fatalf("slide %d not linked to card", i)
		}
		if slide.ID == "" {
			t.Fatalf("slide %d missing id", i)
		}
	}
}

func TestMemoryStoreIncrementViewsSequential(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreateCard(domain.Card{Author: "João", Message: "oi"})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if created.Views != 0 {
		t.Fatalf("expected views to start at 0, got %d", created.Views)
	}
	for i := 0; i < 5; i++ {
		if err := s.IncrementCardViews(created.ID); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}
	card, ok, err := s.GetCard(created.ID)
	if err != nil || !ok {
		t.Fatalf("get card: ok=%v err=%v", ok, err)
	}
	if card.Views != 5 {
		t.Fatalf("expected 5 views, got %d", card.Views)
	}
}

func TestMemoryStoreReactionsAreAppendOnly(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreateCard(domain.Card{Author: "Ana", Message: "abraço"})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	for _, typ := range []string{"LOVE", "LOVE", "SMILE"} {
		if err := s.AddReaction(domain.Reaction{CardID: created.ID, Type: typ}); err != nil {
			t.Fatalf("add reaction: %v", err)
		}
	}
	card, _, err := s.GetCard(created.ID)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if len(card.Reactions) != 3 {
		t.Fatalf("expected 3 reactions (no dedup), got %d", len(card.Reactions))
	}
	if card.Reactions[0].CreatedAt.IsZero() {
		t.Fatalf("expected reaction timestamp to be assigned")
	}
}

func TestMemoryStoreGetUserCardsNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	user, err := s.CreateUser(domain.User{Email: "m@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	var ids []string
	for _, msg := range []string{"um", "dois", "três"} {
		card, err := s.CreateCard(domain.Card{UserID: user.ID, Author: "M", Message: msg})
		if err != nil {
			t.Fatalf("create card: %v", err)
		}
		ids = append(ids, card.ID)
		time.Sleep(2 * time.Millisecond)
	}
	cards, err := s.GetUserCards(user.ID)
	if err != nil {
		t.Fatalf("get user cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].ID != ids[2] || cards[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %v", []string{cards[0].Message, cards[1].Message, cards[2].Message})
	}
}

func TestMemoryStoreFindUserByEmailUsernamePhone(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.CreateUser(domain.User{
		Email:       "maria@example.com",
		Username:    "maria",
		PhoneNumber: "+5511999990000",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, ok, _ := s.FindUserByEmail("maria@example.com"); !ok {
		t.Fatalf("expected email lookup to hit")
	}
	if _, ok, _ := s.FindUserByUsername("maria"); !ok {
		t.Fatalf("expected username lookup to hit")
	}
	if _, ok, _ := s.FindUserByPhone("+5511999990000"); !ok {
		t.Fatalf("expected phone lookup to hit")
	}
	if _, ok, err := s.FindUserByEmail("nobody@example.com"); ok || err != nil {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}
	// Users without username must not match an empty username query.
	if _, err := s.CreateUser(domain.User{Email: "anon@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, ok, _ := s.FindUserByUsername(""); ok {
		t.Fatalf("empty username must never match")
	}
}

func TestMemoryStoreGetCardMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, ok, err := s.GetCard("missing"); ok || err != nil {
		t.Fatalf("expected not-found without error, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreLatencyIsApplied(t *testing.T) {
	s := NewMemoryStoreWithLatency(20 * time.Millisecond)
	start := time.Now()
	if _, _, err := s.GetCard("x"); err != nil {
		t.Fatalf("get card: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected simulated latency, took %v", elapsed)
	}
}
