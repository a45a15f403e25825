package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supabase-community/supabase-go"

	"github.com/vkotenko/fintrack/internal/model"
)

func init() {
	// The amount column is numeric; post amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// row is the transactions table shape. The model keeps no owner field, so the
// user_id column lives only here.
type row struct {
	ID          string                `json:"id,omitempty"`
	UserID      string                `json:"user_id"`
	Type        model.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
	CreatedAt   string                `json:"created_at,omitempty"`
}

func (r row) toModel() (model.Transaction, error) {
	tx := model.Transaction{
		ID:          r.ID,
		Type:        r.Type,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.CreatedAt != "" {
		created, err := parseTimestamp(r.CreatedAt)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", r.CreatedAt, err)
		}
		tx.CreatedAt = created
	}
	return tx, nil
}

// parseTimestamp handles the timestamp shapes PostgREST emits: RFC 3339 with
// a zone offset, or a bare timestamp without one.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}

// SupabaseRepository stores transactions in a hosted Supabase table.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	data, _, err := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", ownerID).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for _, rw := range rows {
		tx, err := rw.toModel()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, ownerID string, tx model.Transaction) (model.Transaction, error) {
	insert := row{
		UserID:      ownerID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date,
	}

	data, _, err := r.client.From("transactions").
		Insert(insert, false, "", "representation", "").
		Execute()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	// The insert returns the persisted rows, carrying the server-assigned id
	// and created_at.
	var created []row
	if err := json.Unmarshal(data, &created); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) == 0 {
		return model.Transaction{}, fmt.Errorf("insert returned no rows")
	}
	return created[0].toModel()
}

func (r *SupabaseRepository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
