package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/portfolio"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// holdingResponse projects a holding row into the mixed-case wire shape.
// Decimals go out as JSON numbers, tags as the decoded list.
func holdingResponse(h models.Holding) map[string]any {
	resp := map[string]any{
		"id":        h.ID,
		"name":      h.Name,
		"category":  h.Category,
		"quantity":  h.Quantity.InexactFloat64(),
		"totalCost": h.TotalCost.InexactFloat64(),
		"currency":  h.Currency,
		"riskLevel": h.RiskLevel,
		"strategy":  h.Strategy,
		"sentiment": h.Sentiment,
		"note":      h.Note,
		"tags":      portfolio.DecodeTags(h.Tags),
		"createdAt": h.CreatedAt.Format(time.RFC3339),
		"updatedAt": h.UpdatedAt.Format(time.RFC3339),
	}
	if h.CurrentPrice.Valid {
		resp["currentPrice"] = h.CurrentPrice.Decimal.InexactFloat64()
	} else {
		resp["currentPrice"] = nil
	}
	return resp
}

func transactionResponse(tx models.Transaction) map[string]any {
	return map[string]any{
		"id":          tx.ID,
		"holdingName": tx.HoldingName,
		"category":    tx.Category,
		"quantity":    tx.Quantity.InexactFloat64(),
		"totalCost":   tx.TotalCost.InexactFloat64(),
		"action":      tx.Action,
		"createdAt":   tx.CreatedAt.Format(time.RFC3339),
	}
}
