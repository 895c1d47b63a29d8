// Package session implements the flashcard study session: deck acquisition,
// card selection, answer recording, and persistence through the key-value
// store. All failure handling is fail-open: a broken network or cache leaves
// the session degraded, never crashed.
package session

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/photos"
	"github.com/vytor/photodeck/internal/repository"
)

// Persistence store keys. The values are the JSON-serialized deck and
// history, matching the original localStorage format.
const (
	deckKey    = "flashcardDeck"
	historyKey = "flashcardHistory"
)

const defaultHistoryLimit = 100

// Session owns all study state for one process lifetime: the deck, the active
// card, the answer-revealed flag, and the bounded answer history. Construct
// exactly one per application and share it; Initialize is a no-op after the
// first call.
type Session struct {
	kv      repository.KVRepository
	fetcher photos.Fetcher
	answers repository.AnswerRepository
	log     *logger.Logger
	now     func() time.Time

	historyLimit int

	mu          sync.Mutex
	rng         *rand.Rand
	deck        []models.Flashcard
	history     []models.HistoryRecord
	current     models.Flashcard
	index       int
	revealed    bool
	loaded      bool
	initialized bool

	firstCard sync.Once
	readyOnce sync.Once
	ready     chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithRand sets the random source used for shuffling and card selection.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithClock sets the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithHistoryLimit overrides the bounded history size.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithAnswerLog attaches the persistent answers log. Recording to it is
// best-effort: a log failure never fails an answer.
func WithAnswerLog(repo repository.AnswerRepository) Option {
	return func(s *Session) {
		s.answers = repo
	}
}

// New creates a Session with the given persistence store and fetcher.
func New(kv repository.KVRepository, fetcher photos.Fetcher, opts ...Option) *Session {
	s := &Session{
		kv:           kv,
		fetcher:      fetcher,
		log:          logger.Default().WithPrefix("session"),
		now:          time.Now,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		historyLimit: defaultHistoryLimit,
		index:        -1,
		ready:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted history and acquires the deck, from the
// cache when possible and otherwise by probing the fetcher in the background.
// It is idempotent: only the first call in the process lifetime does work.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		s.log.Debug("already initialized, skipping")
		return
	}
	s.initialized = true
	s.mu.Unlock()

	s.loadHistory(ctx)

	if cards, ok := s.loadDeckFromCache(ctx); ok {
		s.mu.Lock()
		s.deck = cards
		s.loaded = true
		s.mu.Unlock()
		s.log.Info("deck restored from cache: %d cards", len(cards))
		s.selectFirstCard()
		s.finishLoad()
		return
	}

	s.log.Info("deck cache miss, starting remote load")
	go s.loadDeckFromRemote(ctx)
}

// Ready returns a channel closed once deck acquisition has finished, whether
// or not it produced any cards.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Loaded reports whether at least one card has been loaded into the deck.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Current returns the active card.
func (s *Session) Current() models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Deck returns a copy of the current deck.
func (s *Session) Deck() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Flashcard(nil), s.deck...)
}

// History returns a copy of the in-memory answer history.
func (s *Session) History() []models.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryRecord(nil), s.history...)
}

// Revealed reports whether the active card's answer has been revealed.
func (s *Session) Revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

// Reveal marks the active card's answer as revealed.
func (s *Session) Reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed = true
}

// NextCard selects a uniformly random card from the deck, makes it active,
// and resets the revealed flag. With an empty deck it yields a placeholder
// card rather than failing.
func (s *Session) NextCard() models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextCardLocked()
}

func (s *Session) nextCardLocked() models.Flashcard {
	s.revealed = false
	if len(s.deck) == 0 {
		s.log.Error("no cards available for selection")
		s.index = -1
		s.current = models.Flashcard{}
		return s.current
	}
	s.index = s.rng.Intn(len(s.deck))
	s.current = s.deck[s.index]
	s.log.Debug("selected card %d/%d: %s", s.index, len(s.deck), s.current.Name)
	return s.current
}

// RecordAnswer appends a snapshot of the active card with the given
// correctness flag to the history, evicting the oldest record beyond the
// limit, and appends to the answers log best-effort.
func (s *Session) RecordAnswer(ctx context.Context, isCorrect bool) {
	s.mu.Lock()
	record := models.HistoryRecord{
		Flashcard: s.current,
		IsCorrect: isCorrect,
		Timestamp: s.now().UnixMilli(),
	}
	s.history = append(s.history, record)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	s.mu.Unlock()

	if s.answers != nil {
		answer := models.Answer{
			Name:       record.Flashcard.Name,
			ImageSrc:   record.Flashcard.ImageSrc,
			IsCorrect:  isCorrect,
			AnsweredAt: time.UnixMilli(record.Timestamp),
		}
		if _, err := s.answers.Insert(ctx, answer); err != nil {
			// Don't fail the answer if log storage fails.
			s.log.Warn("failed to store answer log: %v", err)
		}
	}
}

// AnswerCorrect records a correct answer for the active card, persists the
// history, and advances to the next card. Recording happens before advancing
// so the snapshot captures the card that was answered.
func (s *Session) AnswerCorrect(ctx context.Context) models.Flashcard {
	return s.answer(ctx, true)
}

// AnswerIncorrect records an incorrect answer and advances, see AnswerCorrect.
func (s *Session) AnswerIncorrect(ctx context.Context) models.Flashcard {
	return s.answer(ctx, false)
}

func (s *Session) answer(ctx context.Context, isCorrect bool) models.Flashcard {
	s.RecordAnswer(ctx, isCorrect)
	if err := s.SaveHistory(ctx); err != nil {
		s.log.Warn("failed to persist history: %v", err)
	}
	return s.NextCard()
}

// SaveHistory serializes the full history to the persistence store,
// overwriting any prior value.
func (s *Session) SaveHistory(ctx context.Context) error {
	s.mu.Lock()
	history := append([]models.HistoryRecord(nil), s.history...)
	s.mu.Unlock()

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, historyKey, string(data))
}

// Stats returns aggregate accuracy from the answers log.
func (s *Session) Stats(ctx context.Context) (models.AnswerStats, error) {
	if s.answers == nil {
		return models.AnswerStats{}, nil
	}
	return s.answers.Stats(ctx)
}

// loadHistory restores the persisted history. A malformed entry is discarded
// and the session starts with an empty history.
func (s *Session) loadHistory(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, historyKey)
	if err != nil {
		s.log.Warn("failed to read history: %v", err)
		return
	}
	if !ok {
		return
	}

	var history []models.HistoryRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.log.Warn("discarding malformed history cache: %v", err)
		if err := s.kv.Delete(ctx, historyKey); err != nil {
			s.log.Warn("failed to clear malformed history: %v", err)
		}
		return
	}

	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	s.log.Debug("restored %d history records", len(history))
}

// selectFirstCard picks the initial card exactly once per load, no matter how
// many times the loader reports progress.
func (s *Session) selectFirstCard() {
	s.firstCard.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextCardLocked()
	})
}

func (s *Session) finishLoad() {
	s.readyOnce.Do(func() {
		close(s.ready)
	})
}
