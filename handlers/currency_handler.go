package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wayplan/wayplan-backend/services"
	"github.com/wayplan/wayplan-backend/types"
)

// CurrencyHandler exposes the cached rate tables.
type CurrencyHandler struct {
	currency *services.CurrencyService
}

func NewCurrencyHandler(currency *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency}
}

// Rates handles GET /v1/currency/rates?base=. The base defaults to the
// application default currency. Upstream failure degrades to the fallback
// table, so this endpoint never fails.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	base := strings.ToUpper(strings.TrimSpace(c.Query("base")))
	if base == "" {
		base = types.DefaultCurrency
	}

	rates := h.currency.Rates(c.Request.Context(), base)
	c.JSON(http.StatusOK, gin.H{"base": base, "rates": rates})
}
