package grocery

import (
	"net/http"

	groceryCore "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleStoreSuggestions 處理 GET /meal-plans/:id/store-suggestions
func HandleStoreSuggestions(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		common.LogInfo("開始排序商店建議",
			zap.String("request_id", requestID),
			zap.String("plan_id", planID),
			zap.String("budget", string(tier)),
		)

		ranked, err := svc.StoreSuggestions(c.Request.Context(), planID, tier)
		if ranked == nil {
			ranked = []groceryCore.RankedStore{}
		}
		respond(c, requestID, gin.H{"store_suggestions": ranked}, err)
	}
}

// HandleBudgetAlternatives 處理 GET /meal-plans/:id/budget-alternatives
func HandleBudgetAlternatives(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		alternatives, err := svc.BudgetAlternatives(c.Request.Context(), planID, tier)
		if alternatives == nil {
			alternatives = []groceryCore.Alternative{}
		}
		respond(c, requestID, gin.H{"budget_alternatives": alternatives}, err)
	}
}

// HandleStores 處理 GET /stores，回傳設定的商店概況
func HandleStores(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"stores": svc.Stores()})
	}
}
