// src/handlers/trade_handler.go
package handlers

import (
	"net/http"

	"github.com/ldallalio/TradeWise/src/logger"
	"github.com/ldallalio/TradeWise/src/models"
	"github.com/ldallalio/TradeWise/src/services"
	"github.com/ldallalio/TradeWise/src/utils"
)

type TradeHandler struct {
	importService services.ImportService
}

func NewTradeHandler(service services.ImportService) *TradeHandler {
	return &TradeHandler{
		importService: service,
	}
}

// HandleGetTrades lists the stored trade records for one account.
func (h *TradeHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	account := r.URL.Query().Get("account")
	if account == "" {
		utils.SendJSONError(w, "account query parameter is required", http.StatusBadRequest)
		return
	}

	trades, err := h.importService.GetTrades(userID, account)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error retrieving trades", "account", account, "error", err)
		utils.SendJSONError(w, "Error retrieving trades", http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	utils.SendJSON(w, trades, http.StatusOK)
}

// HandleDeleteTrades removes every stored trade for one account and reports
// the deleted count. Used by source-management flows to clear an account
// before a fresh import.
func (h *TradeHandler) HandleDeleteTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	account := r.URL.Query().Get("account")
	if account == "" {
		utils.SendJSONError(w, "account query parameter is required", http.StatusBadRequest)
		return
	}

	deleted, err := h.importService.DeleteTrades(userID, account)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error deleting trades", "account", account, "error", err)
		utils.SendJSONError(w, "Error deleting trades", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]int{"deletedCount": deleted}, http.StatusOK)
}
