package grocery

import (
	"errors"
	"net/http"

	groceryCore "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/core/mealplan"
	"grocery-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ensureRequestID 取得或補上 X-Request-ID
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// requestTier 解析 ?budget= 參數，未給時退回預設等級、
// 不合法時回 400 並中止
func requestTier(c *gin.Context, requestID string, fallback groceryCore.BudgetTier) (groceryCore.BudgetTier, bool) {
	tier, err := groceryCore.ParseBudgetTier(c.Query("budget"), fallback)
	if err != nil {
		common.LogWarn("預算等級無效",
			zap.String("request_id", requestID),
			zap.String("budget", c.Query("budget")),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget tier, expected low, medium or high",
			"code":  common.ErrCodeInvalidRequest,
		})
		return "", false
	}
	return tier, true
}

// respond 把結果與可能的部分資料警告一起送出。未解析的餐點引用
// 不算失敗，結果照常回傳、警告並列（HTTP 200）
func respond(c *gin.Context, requestID string, payload gin.H, err error) {
	if err != nil {
		var partial *groceryCore.PartialDataError
		if errors.As(err, &partial) {
			common.LogWarn("部分餐點無法解析",
				zap.String("request_id", requestID),
				zap.Strings("unresolved_meals", partial.UnresolvedMealIDs),
			)
			payload["warnings"] = gin.H{
				"unresolved_meals": partial.UnresolvedMealIDs,
			}
			c.JSON(http.StatusOK, payload)
			return
		}
		respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// respondError 把引擎錯誤映射到 HTTP 狀態碼
func respondError(c *gin.Context, requestID string, err error) {
	if errors.Is(err, mealplan.ErrPlanNotFound) {
		common.LogWarn("餐飲計畫不存在",
			zap.String("request_id", requestID),
			zap.String("plan_id", c.Param("id")),
		)
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Meal plan not found",
			"code":  common.ErrCodeNotFound,
		})
		return
	}

	common.LogError("請求處理失敗",
		zap.Error(err),
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  common.ErrCodeInternalError,
	})
}
