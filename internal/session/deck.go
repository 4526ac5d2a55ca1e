package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/anki"
	"github.com/verte-zerg/yomiquiz/internal/kana"
	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
)

// ErrNoEligibleCards means the deck has no reviewed cards with kanji on the front.
var ErrNoEligibleCards = errors.New("no cards with kanji found in this deck")

type deckLoaded struct {
	cards []model.Card
	err   error
}

// LoadDeck (re)starts loading the configured deck. It is used on startup and to retry
// after a loading error.
func (m *Machine) LoadDeck() bool {
	if m.state != StateLoading && m.state != StateLoadingError {
		return false
	}
	m.state = StateLoading
	m.loadingError = ""
	src := m.deps.Cards
	deck := m.settings.Deck
	m.run(&m.deckSlot, func(ctx context.Context) any {
		cards, err := fetchDeck(ctx, src, deck)
		return deckLoaded{cards: cards, err: err}
	})
	return true
}

func (m *Machine) applyDeck(msg deckLoaded) {
	if msg.err != nil {
		m.logger.Error("failed to load deck", zap.Error(msg.err))
		m.loadingError = DescribeLoadError(msg.err, m.settings.Deck)
		m.state = StateLoadingError
		return
	}
	m.deps.Shuffle(msg.cards)
	m.allCards = msg.cards
	m.logger.Info("deck loaded", zap.Int("cards", len(msg.cards)))
	m.state = StateMenu
}

// fetchDeck returns the quiz-eligible cards of deck: a kanji on the front and past the new stage.
func fetchDeck(ctx context.Context, src FlashcardSource, deck string) ([]model.Card, error) {
	names, err := src.DeckNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	if !slices.Contains(names, deck) {
		return nil, fmt.Errorf("%w: %q", anki.ErrEmptyDeck, deck)
	}
	ids, err := src.CardIDs(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %q", anki.ErrEmptyDeck, deck)
	}
	infos, err := src.CardsInfo(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards: %w", err)
	}
	cards := make([]model.Card, 0, len(infos))
	for _, card := range infos {
		if maturity.Classify(card) == maturity.New {
			continue
		}
		if !kana.ContainsIdeograph(kana.StripMarkup(card.FrontHTML)) {
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, ErrNoEligibleCards
	}
	return cards, nil
}

// DescribeLoadError turns a deck loading failure into a message for the player.
func DescribeLoadError(err error, deck string) string {
	switch {
	case errors.Is(err, anki.ErrUnreachable):
		return "Cannot connect to Anki. Please make sure Anki is running and AnkiConnect is installed."
	case errors.Is(err, anki.ErrEmptyDeck):
		return fmt.Sprintf("Deck '%s' not found or is empty.", deck)
	case errors.Is(err, ErrNoEligibleCards):
		return "No cards with kanji found in this deck."
	default:
		return "Failed to load deck: " + err.Error()
	}
}
