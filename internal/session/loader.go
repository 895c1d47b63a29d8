package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/photos"
)

// LoadResult describes the outcome of a remote deck load. An empty Cards
// slice with a non-nil ConfigErr is "empty because the config was
// unavailable"; empty with ItemsTried > 0 is "empty because nothing matched".
type LoadResult struct {
	Cards      []models.Flashcard
	ConfigErr  error
	ItemsTried int
}

// loadDeckFromCache restores the deck from the persistence store. A
// malformed cache entry is cleared and reported as a miss, never an error.
func (s *Session) loadDeckFromCache(ctx context.Context) ([]models.Flashcard, bool) {
	raw, ok, err := s.kv.Get(ctx, deckKey)
	if err != nil {
		s.log.Warn("failed to read deck cache: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		s.log.Warn("discarding malformed deck cache: %v", err)
		if err := s.kv.Delete(ctx, deckKey); err != nil {
			s.log.Warn("failed to clear malformed deck cache: %v", err)
		}
		return nil, false
	}
	if len(cards) == 0 {
		return nil, false
	}
	return cards, true
}

// loadDeckFromRemote fetches the deck config, probes each item's candidate
// images strictly one after another, and persists whatever deck results.
// Individual fetch failures are absorbed; a config failure degrades to an
// empty item list.
func (s *Session) loadDeckFromRemote(ctx context.Context) LoadResult {
	var res LoadResult

	cfg, err := s.fetcher.FetchDeckConfig(ctx)
	if err != nil {
		s.log.Warn("deck config unavailable, treating item list as empty: %v", err)
		res.ConfigErr = err
	}

	names := append([]string(nil), cfg.ItemNames...)
	s.shuffle(names)

	for _, name := range names {
		res.ItemsTried++
		cards := s.probeItem(ctx, name)
		for _, card := range cards {
			s.addCard(card)
		}
		res.Cards = append(res.Cards, cards...)
	}

	if len(res.Cards) == 0 {
		s.log.Warn("remote load produced an empty deck (items tried: %d)", res.ItemsTried)
	} else {
		s.log.Info("remote load finished: %d cards from %d items", len(res.Cards), res.ItemsTried)
	}

	s.saveDeck(ctx)
	s.finishLoad()
	return res
}

// probeItem tries the base name with each extension, then indexed variants
// name1..name9. The indexed scan stops the first time both extensions miss
// for the same index; base-name misses do not stop the scan.
func (s *Session) probeItem(ctx context.Context, name string) []models.Flashcard {
	var cards []models.Flashcard

	for _, ext := range photos.ImageExtensions {
		if card, ok := s.tryImage(ctx, name, name+ext); ok {
			cards = append(cards, card)
		}
	}

	for i := 1; i <= 9; i++ {
		found := false
		for _, ext := range photos.ImageExtensions {
			if card, ok := s.tryImage(ctx, name, fmt.Sprintf("%s%d%s", name, i, ext)); ok {
				cards = append(cards, card)
				found = true
			}
		}
		if !found {
			break
		}
	}

	return cards
}

func (s *Session) tryImage(ctx context.Context, name, filename string) (models.Flashcard, bool) {
	src, err := s.fetcher.FetchImage(ctx, filename)
	if err != nil {
		s.log.Debug("image probe miss: %s: %v", filename, err)
		return models.Flashcard{}, false
	}
	return models.Flashcard{ImageSrc: src, Name: name}, true
}

// addCard appends an accepted image to the deck and, on the first card of a
// load, triggers the one-shot initial selection.
func (s *Session) addCard(card models.Flashcard) {
	s.mu.Lock()
	s.deck = append(s.deck, card)
	s.loaded = true
	s.mu.Unlock()
	s.selectFirstCard()
}

// shuffle applies the comparator-randomized ordering the deck has always
// used. It is uniform-ish, not a rigorous permutation.
func (s *Session) shuffle(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(names, func(i, j int) bool {
		return s.rng.Intn(2) == 0
	})
}

func (s *Session) saveDeck(ctx context.Context) {
	s.mu.Lock()
	deck := append([]models.Flashcard(nil), s.deck...)
	s.mu.Unlock()

	data, err := json.Marshal(deck)
	if err != nil {
		s.log.Warn("failed to serialize deck: %v", err)
		return
	}
	if err := s.kv.Set(ctx, deckKey, string(data)); err != nil {
		s.log.Warn("failed to persist deck cache: %v", err)
	}
}
