package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotenko/fintrack/internal/export"
	"github.com/vkotenko/fintrack/internal/gateway"
	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/repository"
)

func newTestServer() *Server {
	return New(":0", gateway.New(repository.NewMemoryRepository()))
}

func doJSON(t *testing.T, s *Server, method, target, owner string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if owner != "" {
		req.Header.Set(ownerHeader, owner)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func addOne(t *testing.T, s *Server, owner string, draft model.Draft) model.Transaction {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", owner, draft)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Success bool              `json:"success"`
		Data    model.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func draft(txType model.TransactionType, amount, category, date string) model.Draft {
	return model.Draft{
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: "via api",
		Date:        date,
	}
}

func TestAddAndListTransactions(t *testing.T) {
	s := newTestServer()

	created := addOne(t, s, "owner-1", draft(model.TypeExpense, "42.50", "Food", "2025-07-01"))
	assert.NotEmpty(t, created.ID)

	rec := doJSON(t, s, http.MethodGet, "/api/transactions", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []model.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, created.ID, envelope.Data[0].ID)
}

func TestListAppliesFilterAndSort(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeIncome, "100", "Salary", "2025-07-01"))
	addOne(t, s, "owner-1", draft(model.TypeExpense, "40", "Food", "2025-07-02"))
	addOne(t, s, "owner-1", draft(model.TypeExpense, "5", "Transport", "2025-07-03"))

	rec := doJSON(t, s, http.MethodGet, "/api/transactions?type=expense&sort=amount&order=asc", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []model.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "Transport", envelope.Data[0].Category)
	assert.Equal(t, "Food", envelope.Data[1].Category)
}

func TestListWithoutOwnerIsEmpty(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/transactions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []model.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestAddValidationFails(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", "owner-1",
		draft(model.TypeExpense, "-5", "Food", "2025-07-01"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount")
}

func TestAddWithoutOwnerIsUnauthorized(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", "",
		draft(model.TypeExpense, "5", "Food", "2025-07-01"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoveTransaction(t *testing.T) {
	s := newTestServer()
	created := addOne(t, s, "owner-1", draft(model.TypeExpense, "5", "Food", "2025-07-01"))

	rec := doJSON(t, s, http.MethodDelete, "/api/transactions/"+created.ID, "owner-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions", "owner-1", nil)
	var envelope struct {
		Data []model.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestSummaryIsGlobal(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeIncome, "100", "Salary", "2025-07-01"))
	addOne(t, s, "owner-1", draft(model.TypeExpense, "40", "Food", "2025-07-02"))

	// Summary ignores list filters; totals stay global.
	rec := doJSON(t, s, http.MethodGet, "/api/summary?type=expense", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data model.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "100.00", envelope.Data.TotalIncome.StringFixed(2))
	assert.Equal(t, "40.00", envelope.Data.TotalExpenses.StringFixed(2))
	assert.Equal(t, "60.00", envelope.Data.Balance.StringFixed(2))
	assert.Equal(t, 2, envelope.Data.Count)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeExpense, "42.50", "Food", "2025-07-01"))

	rec := doJSON(t, s, http.MethodGet, "/api/export/csv", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transactions-")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, export.CSVHeader, lines[0])
	assert.Equal(t, "1,2025-07-01,expense,Food,via api,42.50", lines[1])
}

func TestExportPrintDocument(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeExpense, "42.50", "Food", "2025-07-01"))

	rec := doJSON(t, s, http.MethodGet, "/api/export/print", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Financial Transactions")
}

func TestExportPDF(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeExpense, "42.50", "Food", "2025-07-01"))

	rec := doJSON(t, s, http.MethodGet, "/api/export/pdf", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestChartWithNoDataIsNoContent(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/charts/balance", "owner-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChartRendersPNG(t *testing.T) {
	s := newTestServer()
	addOne(t, s, "owner-1", draft(model.TypeExpense, "10", "Food", "2025-07-01"))
	addOne(t, s, "owner-1", draft(model.TypeIncome, "100", "Salary", "2025-07-02"))

	rec := doJSON(t, s, http.MethodGet, "/api/charts/balance", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}
