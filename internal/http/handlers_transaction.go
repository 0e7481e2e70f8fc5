package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"tally/internal/core"
	"tally/internal/service"
)

type (
	createTransactionRequest struct {
		Date        string `json:"date" validate:"required"`
		Amount      string `json:"amount" validate:"required"`
		Kind        string `json:"kind" validate:"required,oneof=income expense"`
		Category    string `json:"category" validate:"required,max=64"`
		Description string `json:"description" validate:"max=200"`
	}

	transactionResponse struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		Amount      string `json:"amount"`
		AmountCents int64  `json:"amount_cents"`
		Kind        string `json:"kind"`
		Category    string `json:"category"`
		Description string `json:"description,omitempty"`
	}
)

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Amount:      tx.Amount.String(),
		AmountCents: tx.Amount.Cents,
		Kind:        string(tx.Kind),
		Category:    tx.Category,
		Description: tx.Description,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	key := userKey(r)
	tx, err := s.svc.AddTransaction(r.Context(), key, service.AddTransactionInput{
		Date:        req.Date,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	s.invalidateUserCaches(key)
	transactionsCreated.WithLabelValues(string(tx.Kind)).Inc()

	slog.InfoContext(r.Context(), "Transaction created",
		"user_key", key,
		"transaction_id", tx.ID,
		"kind", tx.Kind,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)
	respondJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.ListTransactions(r.Context(), userKey(r), r.URL.Query().Get("month"))
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	id := r.PathValue("id")

	removed, err := s.svc.RemoveTransaction(r.Context(), key, id)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	if !removed {
		// Double-deletes from a stale view are tolerated but signalled.
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.invalidateUserCaches(key)

	slog.InfoContext(r.Context(), "Transaction deleted",
		"user_key", key,
		"transaction_id", id)
	respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// parseLimit reads a positive integer query parameter, defaulting on junk.
func parseLimit(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
