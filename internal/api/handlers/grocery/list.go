package grocery

import (
	groceryCore "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleGroceryList 處理 GET /meal-plans/:id/grocery-list
func HandleGroceryList(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		common.LogInfo("開始產出採購清單",
			zap.String("request_id", requestID),
			zap.String("plan_id", planID),
			zap.String("budget", string(tier)),
		)

		list, err := svc.GroceryList(c.Request.Context(), planID, tier)
		if list == nil {
			respondError(c, requestID, err)
			return
		}
		respond(c, requestID, gin.H{"grocery_list": list}, err)
	}
}

// HandleGrocerySummary 處理 GET /meal-plans/:id/grocery-summary
func HandleGrocerySummary(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		summary, err := svc.Summary(c.Request.Context(), planID, tier)
		if summary == nil {
			respondError(c, requestID, err)
			return
		}
		respond(c, requestID, gin.H{"summary": summary}, err)
	}
}

// HandleCostEstimate 處理 GET /meal-plans/:id/cost-estimate
func HandleCostEstimate(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		estimate, err := svc.CostEstimate(c.Request.Context(), planID, tier)
		if estimate == nil {
			respondError(c, requestID, err)
			return
		}
		respond(c, requestID, gin.H{"cost_estimate": estimate}, err)
	}
}

// HandleGroceryOverview 處理 GET /meal-plans/:id/grocery-overview，
// 一次取回清單、摘要、估價、商店與替代品
func HandleGroceryOverview(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		overview, err := svc.BuildOverview(c.Request.Context(), planID, tier)
		if overview == nil {
			respondError(c, requestID, err)
			return
		}
		respond(c, requestID, gin.H{"overview": overview}, err)
	}
}
