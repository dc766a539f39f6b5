package routine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/logger"
	"github.com/julianstephens/sknn/internal/models"
	"github.com/julianstephens/sknn/internal/storage"
	"github.com/julianstephens/sknn/internal/utils"
)

var (
	ErrEmptyName        = errors.New("routine name cannot be empty")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrNotInitialized   = errors.New("routine store not initialized")
	// ErrNotFound is for callers resolving ids; the store itself treats unknown ids as no-ops.
	ErrNotFound = errors.New("routine not found")
)

// Store owns the routine list and keeps it in sync with a key/value backend.
// Every mutation builds a new list, persists it in full, and only then
// replaces the in-memory copy.
type Store struct {
	mu          sync.Mutex
	kv          storage.KV
	key         string
	now         func() time.Time
	newID       func() string
	items       []models.RoutineItem
	initialized bool
}

type Option func(*Store)

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how new routine ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithKey overrides the storage key the list is kept under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   constants.RoutinesKey,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) today() string {
	return utils.DateOf(s.now())
}

// Initialize loads the stored list, or seeds the defaults when there is none
// or it cannot be decoded, applies the daily rollover, and persists the result.
func (s *Store) Initialize() ([]models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load routines: %w", err)
	}

	var items []models.RoutineItem
	if ok {
		items, err = Decode(raw)
		if err != nil {
			logger.Warn("Discarding unreadable routine list", "error", err)
			ok = false
		}
	}

	if !ok {
		items = DefaultRoutines(s.newID)
		logger.Info("Seeded default routines", "count", len(items))
	} else {
		var cleared int
		items, cleared = Rollover(items, s.today())
		if cleared > 0 {
			logger.Info("Cleared completions from a previous day", "count", cleared)
		}
	}

	if err := s.persist(items); err != nil {
		return nil, err
	}
	s.items = items
	s.initialized = true
	return models.CloneItems(s.items), nil
}

// Add appends a new, uncompleted routine step.
func (s *Store) Add(name string, timeOfDay models.TimeOfDay) ([]models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.CloneItems(s.items), ErrEmptyName
	}
	if !timeOfDay.Valid() {
		return models.CloneItems(s.items), fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, timeOfDay)
	}

	next := append(models.CloneItems(s.items), models.RoutineItem{
		ID:        s.uniqueID(),
		Name:      name,
		TimeOfDay: timeOfDay,
	})
	return s.commit(next)
}

// Toggle flips completion for id. Unknown ids leave the list untouched.
func (s *Store) Toggle(id string) ([]models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.CloneItems(s.items), nil
	}

	next := models.CloneItems(s.items)
	item := &next[idx]
	item.Completed = !item.Completed
	if item.Completed {
		today := s.today()
		item.LastCompletedDate = &today
	} else {
		item.LastCompletedDate = nil
	}
	return s.commit(next)
}

// Delete removes id, keeping the order of the rest. Unknown ids leave the list untouched.
func (s *Store) Delete(id string) ([]models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.CloneItems(s.items), nil
	}

	next := make([]models.RoutineItem, 0, len(s.items)-1)
	for i, item := range s.items {
		if i != idx {
			next = append(next, item.Clone())
		}
	}
	return s.commit(next)
}

// ResetAll marks every item uncompleted regardless of date.
func (s *Store) ResetAll() ([]models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	next := models.CloneItems(s.items)
	for i := range next {
		next[i].Completed = false
		next[i].LastCompletedDate = nil
	}
	return s.commit(next)
}

// Items returns a copy of the current list.
func (s *Store) Items() []models.RoutineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneItems(s.items)
}

// Progress computes the completion view over the current list.
func (s *Store) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ComputeProgress(s.items)
}

// commit persists next and adopts it. On a failed write the previous list stays current.
func (s *Store) commit(next []models.RoutineItem) ([]models.RoutineItem, error) {
	if err := s.persist(next); err != nil {
		return models.CloneItems(s.items), err
	}
	s.items = next
	return models.CloneItems(s.items), nil
}

func (s *Store) persist(items []models.RoutineItem) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		return fmt.Errorf("failed to save routines: %w", err)
	}
	logger.Debug("Saved routines", "count", len(items))
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// Encode serializes a routine list for storage.
func Encode(items []models.RoutineItem) (string, error) {
	if items == nil {
		items = []models.RoutineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to serialize routines: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored routine list and checks every item and id uniqueness.
func Decode(raw string) ([]models.RoutineItem, error) {
	var items []models.RoutineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse routines: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("failed to parse routines: expected a list")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate routine id %s", item.ID)
		}
		seen[item.ID] = true
	}
	return items, nil
}
