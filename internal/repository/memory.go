package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vkotenko/fintrack/internal/model"
)

// MemoryRepository is an in-process Repository for tests and local
// development. It mimics the hosted store's contract: server-assigned ids and
// created_at, owner scoping, newest-date-first reads, and silent deletes of
// absent rows.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]memoryRecord
	seq  int
}

type memoryRecord struct {
	ownerID string
	seq     int
	tx      model.Transaction
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]memoryRecord),
	}
}

func (r *MemoryRepository) GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []memoryRecord
	for _, rec := range r.byID {
		if rec.ownerID == ownerID {
			records = append(records, rec)
		}
	}

	// Newest date first; equal dates fall back to insertion order, standing
	// in for the backend's natural order.
	sort.Slice(records, func(i, j int) bool {
		if records[i].tx.Date != records[j].tx.Date {
			return records[i].tx.Date > records[j].tx.Date
		}
		return records[i].seq < records[j].seq
	})

	transactions := make([]model.Transaction, len(records))
	for i, rec := range records {
		transactions[i] = rec.tx
	}
	return transactions, nil
}

func (r *MemoryRepository) CreateTransaction(ctx context.Context, ownerID string, tx model.Transaction) (model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = uuid.New().String()
	tx.CreatedAt = time.Now().UTC()
	r.seq++
	r.byID[tx.ID] = memoryRecord{ownerID: ownerID, seq: r.seq, tx: tx}
	return tx, nil
}

func (r *MemoryRepository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.byID[id]; ok && rec.ownerID == ownerID {
		delete(r.byID, id)
	}
	// Matching no row is still a successful delete.
	return nil
}
