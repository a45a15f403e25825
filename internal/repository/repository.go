package repository

import (
	"context"

	"github.com/vkotenko/fintrack/internal/model"
)

// Repository is the owner-scoped transaction store boundary.
type Repository interface {
	// GetTransactions returns every transaction belonging to ownerID, newest
	// date first. Relative order of equal dates follows the backend's natural
	// order and is not deterministic.
	GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error)

	// CreateTransaction inserts tx for ownerID and returns the persisted
	// record with the server-assigned id and created_at.
	CreateTransaction(ctx context.Context, ownerID string, tx model.Transaction) (model.Transaction, error)

	// DeleteTransaction removes the transaction with id under ownerID. A
	// delete that matches no row is not an error.
	DeleteTransaction(ctx context.Context, ownerID, id string) error
}
