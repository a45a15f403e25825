// Package gateway owns the authoritative in-memory mirror of each owner's
// transaction collection and keeps it consistent with the remote store. All
// reads and writes of transactions go through it; view derivation works on
// snapshots it hands out.
package gateway

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkotenko/fintrack/internal/errs"
	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/repository"
)

// Gateway mediates all transaction reads and writes. Mirrors are keyed by
// owner, so concurrent requests for different owners can never observe each
// other's collections. A mirror is only mutated after the remote call
// confirms, so a failed operation never leaves partial state. Every
// operation takes the owner identity explicitly; there is no ambient
// session.
type Gateway struct {
	repo repository.Repository

	mu      sync.Mutex
	mirrors map[string]*mirror
}

// mirror is one owner's collection plus its load generation guard:
// overlapping loads for the same owner resolve by issue order, not arrival
// order. Only the highest generation may replace the collection; stale
// completions are discarded.
type mirror struct {
	transactions []model.Transaction
	issuedGen    uint64
	appliedGen   uint64
}

func New(repo repository.Repository) *Gateway {
	return &Gateway{
		repo:    repo,
		mirrors: make(map[string]*mirror),
	}
}

// mirrorFor returns the owner's mirror, creating it on first use. Callers
// must hold g.mu.
func (g *Gateway) mirrorFor(ownerID string) *mirror {
	m, ok := g.mirrors[ownerID]
	if !ok {
		m = &mirror{}
		g.mirrors[ownerID] = m
	}
	return m
}

// Load replaces the owner's mirror with the full collection, newest date
// first. An empty ownerID resolves to an empty collection without a remote
// call and without touching any mirror. On remote failure the previous
// mirror is left untouched. When a load has been superseded by a later load
// for the same owner, the stale completion is discarded and the caller sees
// the owner's current collection.
func (g *Gateway) Load(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	if ownerID == "" {
		return nil, nil
	}

	g.mu.Lock()
	m := g.mirrorFor(ownerID)
	m.issuedGen++
	gen := m.issuedGen
	g.mu.Unlock()

	transactions, err := g.repo.GetTransactions(ctx, ownerID)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "load transactions", Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen > m.appliedGen {
		m.appliedGen = gen
		m.transactions = transactions
	}
	return snapshot(m.transactions), nil
}

// Add validates the draft, inserts it for the owner, and prepends the
// persisted record to the owner's mirror. Insertion order, not date order,
// governs where new entries appear; a later Load restores date order.
func (g *Gateway) Add(ctx context.Context, ownerID string, draft model.Draft) (model.Transaction, error) {
	if ownerID == "" {
		return model.Transaction{}, errs.ErrAuthenticationRequired
	}

	tx, err := validate(draft)
	if err != nil {
		return model.Transaction{}, err
	}

	created, err := g.repo.CreateTransaction(ctx, ownerID, tx)
	if err != nil {
		return model.Transaction{}, &errs.PersistenceError{Op: "add transaction", Err: err}
	}

	g.mu.Lock()
	m := g.mirrorFor(ownerID)
	m.transactions = append([]model.Transaction{created}, m.transactions...)
	g.mu.Unlock()
	return created, nil
}

// Remove deletes by id under the owner's scope and drops the entry from the
// owner's mirror. A delete matching no row (absent or foreign-owned id) is
// reported by the store as success with no rows affected and is treated as a
// successful idempotent delete here as well.
func (g *Gateway) Remove(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return errs.ErrAuthenticationRequired
	}

	if err := g.repo.DeleteTransaction(ctx, ownerID, id); err != nil {
		return &errs.PersistenceError{Op: "remove transaction", Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	m := g.mirrorFor(ownerID)
	kept := m.transactions[:0:0]
	for _, tx := range m.transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	m.transactions = kept
	return nil
}

// Snapshot returns a read-only copy of the owner's mirrored collection
// without a remote call, for consumers rendering state they already loaded.
func (g *Gateway) Snapshot(ownerID string) []model.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return snapshot(g.mirrorFor(ownerID).transactions)
}

func snapshot(transactions []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(transactions))
	copy(out, transactions)
	return out
}

// validate checks a draft before any remote call is made.
func validate(draft model.Draft) (model.Transaction, error) {
	if !draft.Type.Valid() {
		return model.Transaction{}, &errs.ValidationError{Field: "type", Reason: "must be income or expense"}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(draft.Amount))
	if err != nil {
		return model.Transaction{}, &errs.ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if amount.IsNegative() {
		return model.Transaction{}, &errs.ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	if strings.TrimSpace(draft.Category) == "" {
		return model.Transaction{}, &errs.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.TrimSpace(draft.Description) == "" {
		return model.Transaction{}, &errs.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	if _, err := time.Parse(model.DateFormat, draft.Date); err != nil {
		return model.Transaction{}, &errs.ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD date"}
	}

	return model.Transaction{
		Type:        draft.Type,
		Amount:      amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date,
	}, nil
}
