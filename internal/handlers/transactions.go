package handlers

import (
	"net/http"

	"portfolio/internal/middleware"
)

const transactionListCap = 50

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	entries, err := h.ledger.ListByUser(r.Context(), userID, transactionListCap)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	responses := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, transactionResponse(entry))
	}
	respondJSON(w, http.StatusOK, responses)
}
