package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"encoraja/pkg/auth"
	"encoraja/pkg/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{
		Store:      store.NewMemoryStore(),
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	a := newTestApp(t)
	user, err := a.Register(RegisterInput{Email: "  Maria@Example.COM ", Password: "segredo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "maria@example.com" {
		t.Fatalf("expected lowered trimmed email, got %q", user.Email)
	}
	if user.Name != "maria" {
		t.Fatalf("expected name from email local part, got %q", user.Name)
	}
	if user.PasswordHash == "segredo" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !auth.CheckPassword("segredo", user.PasswordHash) {
		t.Fatalf("stored hash must verify the original password")
	}
}

func TestRegisterRejectsMissingFieldsAndShortPassword(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register(RegisterInput{Email: "", Password: "segredo"}); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
	if _, err := a.Register(RegisterInput{Email: "a@b.com", Password: ""}); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
	if _, err := a.Register(RegisterInput{Email: "a@b.com", Password: "abc"}); !errors.Is(err, auth.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegisterDuplicateChecksAreDistinct(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register(RegisterInput{
		Email:       "maria@example.com",
		Password:    "segredo",
		Username:    "maria",
		PhoneNumber: "+5511999990000",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := a.Register(RegisterInput{Email: "maria@example.com", Password: "segredo"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if _, err := a.Register(RegisterInput{Email: "outra@example.com", Password: "segredo", Username: "maria"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := a.Register(RegisterInput{Email: "outra@example.com", Password: "segredo", PhoneNumber: "+5511999990000"}); !errors.Is(err, ErrPhoneAlreadyRegistered) {
		t.Fatalf("expected ErrPhoneAlreadyRegistered, got %v", err)
	}
}

func TestLoginByEmailAndPhone(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register(RegisterInput{
		Email:       "joao@example.com",
		Password:    "segredo",
		PhoneNumber: "+5511988887777",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := a.Login("Joao@Example.com", "segredo")
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if token == "" || user.Email != "joao@example.com" {
		t.Fatalf("unexpected login result: token=%q email=%q", token, user.Email)
	}

	if _, _, err := a.Login("+5511988887777", "segredo"); err != nil {
		t.Fatalf("login by phone: %v", err)
	}

	if _, _, err := a.Login("joao@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := a.Login("nobody@example.com", "segredo"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register(RegisterInput{Email: "ana@example.com", Password: "segredo"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, err := a.Login("ana@example.com", "segredo")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := a.UserFromToken(token); !ok {
		t.Fatalf("expected token to resolve before logout")
	}
	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.UserFromToken(token); ok {
		t.Fatalf("expected token to stop resolving after logout")
	}
}

func TestSuggestUsernames(t *testing.T) {
	a := newTestApp(t)
	suggestions, err := a.SuggestUsernames("maria")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) == 0 || len(suggestions) > 3 {
		t.Fatalf("expected 1..3 suggestions, got %d", len(suggestions))
	}
	seen := map[string]bool{}
	for _, s := range suggestions {
		if !strings.HasPrefix(s, "maria") {
			t.Fatalf("suggestion %q lost the base", s)
		}
		if seen[s] {
			t.Fatalf("duplicate suggestion %q", s)
		}
		seen[s] = true
		taken, err := a.CheckUsername(s)
		if err != nil {
			t.Fatalf("check username: %v", err)
		}
		if taken {
			t.Fatalf("suggestion %q is already taken", s)
		}
	}
}

func TestCreateCardDefaultsAndSlideOrder(t *testing.T) {
	a := newTestApp(t)
	id, err := a.CreateCard(CreateCardInput{
		Author: "Maria",
		Slides: []SlideInput{
			{Content: "primeira"},
			{Content: "segunda"},
		},
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	view := a.ViewCard(id)
	if view == nil {
		t.Fatalf("expected card view")
	}
	if view.FontSize != 24 || view.TextAlign != "center" {
		t.Fatalf("expected style defaults, got fontSize=%d textAlign=%q", view.FontSize, view.TextAlign)
	}
	if len(view.Slides) != 2 || view.Slides[0].Content != "primeira" || view.Slides[1].Content != "segunda" {
		t.Fatalf("slides out of order: %+v", view.Slides)
	}
	if view.CreatedAt == 0 {
		t.Fatalf("expected epoch-millis createdAt")
	}
}

func TestCreateCardRequiresMessageOrSlideContent(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.CreateCard(CreateCardInput{Author: "X"}); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
	if _, err := a.CreateCard(CreateCardInput{Author: "X", Slides: []SlideInput{{Content: ""}}}); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired for empty first slide, got %v", err)
	}
	if _, err := a.CreateCard(CreateCardInput{Author: "X", Slides: []SlideInput{{Content: "oi"}}}); err != nil {
		t.Fatalf("first slide content should satisfy the requirement: %v", err)
	}
}

func TestCreateCardRejectsMalformedRevealAt(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.CreateCard(CreateCardInput{Message: "oi", RevealAt: "amanhã"}); err == nil {
		t.Fatalf("expected error for malformed revealAt")
	}
}

func TestRevealGateWithholdsContentAndViews(t *testing.T) {
	a := newTestApp(t)
	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	id, err := a.CreateCard(CreateCardInput{
		Author:   "Maria",
		Message:  "surpresa",
		AudioURL: "/uploads/a.mp3",
		Slides:   []SlideInput{{Content: "segredo"}},
		RevealAt: future,
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}

	view := a.ViewCard(id)
	if view == nil {
		t.Fatalf("expected card view")
	}
	if !view.Locked {
		t.Fatalf("expected card to be locked before revealAt")
	}
	if view.Message != "" || len(view.Slides) != 0 || view.AudioURL != "" {
		t.Fatalf("locked card must withhold content: %+v", view)
	}
	if view.RevealAt == nil {
		t.Fatalf("locked card must still expose revealAt")
	}

	a.CountView(id)
	if got := a.ViewCard(id); got.Views != 0 {
		t.Fatalf("views must not count while locked, got %d", got.Views)
	}
}

func TestRevealGateOpensAfterRevealAt(t *testing.T) {
	a := newTestApp(t)
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	id, err := a.CreateCard(CreateCardInput{Author: "Maria", Message: "aberto", RevealAt: past})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	view := a.ViewCard(id)
	if view.Locked || view.Message != "aberto" {
		t.Fatalf("expected unlocked card, got locked=%v message=%q", view.Locked, view.Message)
	}
	a.CountView(id)
	a.CountView(id)
	if got := a.ViewCard(id); got.Views != 2 {
		t.Fatalf("expected 2 views, got %d", got.Views)
	}
}

func TestReactAppendsAndIgnoresEmptyType(t *testing.T) {
	a := newTestApp(t)
	id, err := a.CreateCard(CreateCardInput{Author: "Maria", Message: "oi"})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	a.React(id, "LOVE")
	a.React(id, "LOVE")
	a.React(id, "")
	view := a.ViewCard(id)
	if len(view.Reactions) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(view.Reactions))
	}
	if view.Reactions[0].Type != "LOVE" || view.Reactions[0].CreatedAt == 0 {
		t.Fatalf("unexpected reaction shape: %+v", view.Reactions[0])
	}
}

func TestViewCardMissingReturnsNil(t *testing.T) {
	a := newTestApp(t)
	if view := a.ViewCard("missing"); view != nil {
		t.Fatalf("expected nil for unknown card, got %+v", view)
	}
}

func TestUserCardsNewestFirst(t *testing.T) {
	a := newTestApp(t)
	user, err := a.Register(RegisterInput{Email: "m@example.com", Password: "segredo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, msg := range []string{"um", "dois"} {
		if _, err := a.CreateCard(CreateCardInput{UserID: user.ID, Author: "M", Message: msg}); err != nil {
			t.Fatalf("create card: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	cards := a.UserCards(user.ID)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Message != "dois" {
		t.Fatalf("expected newest first, got %q", cards[0].Message)
	}
}

func TestMessageSuggestions(t *testing.T) {
	a := newTestApp(t)
	out := a.MessageSuggestions("Teocrático")
	if len(out) != 4 {
		t.Fatalf("expected 4 scripture suggestions, got %d", len(out))
	}
	generic := a.MessageSuggestions("aniversário")
	if len(generic) != 4 {
		t.Fatalf("expected 4 generic suggestions, got %d", len(generic))
	}
	for _, msg := range generic {
		if !strings.Contains(msg, "aniversário") {
			t.Fatalf("generic suggestion %q must embed the category", msg)
		}
	}
}
