package common

import (
	"math"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// Round2 四捨五入到小數點後兩位，只在輸出邊界使用，中間計算保持原值
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
