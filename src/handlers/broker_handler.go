// src/handlers/broker_handler.go
package handlers

import (
	"net/http"

	"github.com/ldallalio/TradeWise/src/brokers"
	"github.com/ldallalio/TradeWise/src/utils"
)

type BrokerHandler struct {
	registry *brokers.Registry
}

func NewBrokerHandler(registry *brokers.Registry) *BrokerHandler {
	return &BrokerHandler{registry: registry}
}

// HandleListBrokers returns the supported broker profiles. The schema text is
// display-only documentation; parsing never depends on it.
func (h *BrokerHandler) HandleListBrokers(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.registry.List(), http.StatusOK)
}
