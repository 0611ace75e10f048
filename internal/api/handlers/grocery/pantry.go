package grocery

import (
	"net/http"

	groceryCore "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MissingItemsRequest 儲藏室比對請求
type MissingItemsRequest struct {
	PantryItems []string `json:"pantry_items"`
}

// HandleMissingItems 處理 POST /meal-plans/:id/missing-items
func HandleMissingItems(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)
		planID := c.Param("id")
		tier, ok := requestTier(c, requestID, svc.DefaultTier())
		if !ok {
			return
		}

		var req MissingItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogError("請求格式無效",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}

		common.LogInfo("開始比對儲藏室",
			zap.String("request_id", requestID),
			zap.String("plan_id", planID),
			zap.Int("pantry_items", len(req.PantryItems)),
		)

		missing, err := svc.MissingItems(c.Request.Context(), planID, req.PantryItems, tier)
		if missing == nil {
			missing = []groceryCore.MissingItem{}
		}
		respond(c, requestID, gin.H{"missing_items": missing}, err)
	}
}

// MarkPurchasedRequest 標記已購請求
type MarkPurchasedRequest struct {
	Items []string `json:"items" binding:"required"`
}

// HandleMarkPurchased 處理 POST /meal-plans/:id/mark-purchased
func HandleMarkPurchased(svc *groceryCore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req MarkPurchasedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogError("請求格式無效",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}

		receipt := svc.MarkPurchased(req.Items)

		common.LogInfo("標記已購項目",
			zap.String("request_id", requestID),
			zap.String("plan_id", c.Param("id")),
			zap.Int("items", len(req.Items)),
		)

		c.JSON(http.StatusOK, receipt)
	}
}
