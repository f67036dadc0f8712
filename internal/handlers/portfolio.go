package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio/internal/middleware"
	"portfolio/internal/portfolio"
	"portfolio/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type holdingRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Quantity     float64  `json:"quantity"`
	Cost         float64  `json:"cost"`
	Currency     string   `json:"currency"`
	CurrentPrice *float64 `json:"currentPrice"`
	RiskLevel    string   `json:"riskLevel"`
	Strategy     string   `json:"strategy"`
	Sentiment    string   `json:"sentiment"`
	Note         string   `json:"note"`
	Tags         []string `json:"tags"`
}

func (req holdingRequest) payload() portfolio.Payload {
	if req.Category == "" {
		req.Category = portfolio.DefaultCategory
	}
	if req.Currency == "" {
		req.Currency = portfolio.DefaultCurrency
	}
	if req.RiskLevel == "" {
		req.RiskLevel = portfolio.DefaultRiskLevel
	}
	p := portfolio.Payload{
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  decimal.NewFromFloat(req.Quantity),
		Cost:      decimal.NewFromFloat(req.Cost),
		Currency:  req.Currency,
		RiskLevel: req.RiskLevel,
		Strategy:  req.Strategy,
		Sentiment: req.Sentiment,
		Note:      req.Note,
		Tags:      req.Tags,
	}
	if req.CurrentPrice != nil {
		price := decimal.NewFromFloat(*req.CurrentPrice)
		p.CurrentPrice = &price
	}
	return p
}

func (h *Handler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	holdings, err := h.holdings.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load portfolio")
		return
	}
	responses := make([]map[string]any, 0, len(holdings))
	for _, holding := range holdings {
		responses = append(responses, holdingResponse(holding))
	}
	respondJSON(w, http.StatusOK, responses)
}

func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	normalized, err := portfolio.Normalize(req.payload())
	if err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	holding, err := h.service.Upsert(r.Context(), userID, normalized)
	if err != nil {
		if errors.Is(err, services.ErrNameConflict) {
			respondError(w, http.StatusConflict, "Holding name already exists.")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to save holding")
		return
	}
	respondJSON(w, http.StatusOK, holdingResponse(holding))
}

func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	holdingID := chi.URLParam(r, "id")
	var req holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	normalized, err := portfolio.Normalize(req.payload())
	if err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	holding, err := h.service.Update(r.Context(), userID, holdingID, normalized)
	if err != nil {
		if errors.Is(err, services.ErrHoldingNotFound) {
			respondError(w, http.StatusNotFound, "Holding not found.")
			return
		}
		if errors.Is(err, services.ErrNameConflict) {
			respondError(w, http.StatusConflict, "Holding name already exists.")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update holding")
		return
	}
	respondJSON(w, http.StatusOK, holdingResponse(holding))
}

func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	holdingID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), userID, holdingID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete holding")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, portfolio.ErrInvalidCategory):
		return "Invalid category."
	case errors.Is(err, portfolio.ErrInvalidCurrency):
		return "Invalid currency."
	case errors.Is(err, portfolio.ErrInvalidRiskLevel):
		return "Invalid risk level."
	case errors.Is(err, portfolio.ErrInvalidTag):
		return "Invalid tag."
	case errors.Is(err, portfolio.ErrTooManyTags):
		return "Too many tags."
	default:
		return "Invalid portfolio data."
	}
}
