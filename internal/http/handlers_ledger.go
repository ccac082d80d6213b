package http

import (
	"errors"
	"net/http"
	"strings"

	"farmbook/internal/core"
	"farmbook/internal/ledger"
)

// parseDecimalAmount converts an optional decimal-string amount ("12.34",
// comma separator accepted) into Money. ok is false when the string is
// present but malformed.
func parseDecimalAmount(s string) (amount core.Money, set, ok bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return core.Money{}, false, true
	}
	cents, err := core.ParseDecimalToCents(v)
	if err != nil {
		return core.Money{}, true, false
	}
	return core.Money{Cents: cents}, true, true
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		core.Transaction
		DecimalAmount string `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx := req.Transaction
	if amount, set, ok := parseDecimalAmount(req.DecimalAmount); set {
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		tx.Amount = amount
	}
	tx.Description = sanitizeInput(tx.Description)

	created, err := s.ledger.AddTransaction(tx)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateDashboard()
	s.logger.InfoContext(r.Context(), "Transaction created",
		"transaction_id", created.ID,
		"type", string(created.Type),
		"amount_cents", created.Amount.Cents)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteTransaction(id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	s.invalidateDashboard()
	s.logger.InfoContext(r.Context(), "Transaction deleted", "transaction_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	data := s.ledger.Snapshot()
	writeJSON(w, http.StatusOK, data.Categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.Name = sanitizeInput(c.Name)

	created, err := s.ledger.AddCategory(c)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.ID = r.PathValue("id")
	c.Name = sanitizeInput(c.Name)

	updated, err := s.ledger.UpdateCategory(c)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteCategory(id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.Account
	if err := decodeJSON(w, r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.Name = sanitizeInput(a.Name)

	created, err := s.ledger.AddAccount(a)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		core.Liability
		DecimalBalance     string `json:"currentBalance"`
		DecimalInstallment string `json:"installmentAmount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l := req.Liability
	if balance, set, ok := parseDecimalAmount(req.DecimalBalance); set {
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "invalid current balance")
			return
		}
		l.CurrentBalance = balance
	}
	if installment, set, ok := parseDecimalAmount(req.DecimalInstallment); set {
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "invalid installment amount")
			return
		}
		l.InstallmentAmount = installment
	}
	l.Name = sanitizeInput(l.Name)
	l.Description = sanitizeInput(l.Description)

	created, err := s.ledger.AddLiability(l)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}
