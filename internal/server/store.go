package server

import (
	"context"
	"sync"

	"github.com/amsibert-fmms/Solitaire/internal/database"
	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

// WinStore abstracts win persistence so handlers run identically against
// Postgres and the in-memory fallback.
type WinStore interface {
	Insert(ctx context.Context, id string, rec difficulty.WinRecord) error
	DeckWins(ctx context.Context, deckKey string) ([]difficulty.WinRecord, error)
}

// PGStore persists wins through the shared database pool.
type PGStore struct{}

func (PGStore) Insert(ctx context.Context, id string, rec difficulty.WinRecord) error {
	return database.InsertWin(ctx, id, rec)
}

func (PGStore) DeckWins(ctx context.Context, deckKey string) ([]difficulty.WinRecord, error) {
	return database.FetchWinsByDeckKey(ctx, deckKey)
}

// MemoryStore keeps wins in process memory. Used when no DATABASE_URL is
// configured, and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	wins map[string][]difficulty.WinRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wins: make(map[string][]difficulty.WinRecord)}
}

func (s *MemoryStore) Insert(_ context.Context, _ string, rec difficulty.WinRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[rec.DeckKey] = append(s.wins[rec.DeckKey], rec)
	return nil
}

func (s *MemoryStore) DeckWins(_ context.Context, deckKey string) ([]difficulty.WinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]difficulty.WinRecord(nil), s.wins[deckKey]...), nil
}
