package util

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParamID 读取路径中的正整数 ID，非法时返回 ValidationError
func ParamID(c *gin.Context, name string) (uint, error) {
	id := MustParseUint(c.Param(name))
	if id == 0 {
		return 0, NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// Round2 保留两位小数，与 decimal(5,2) 列一致
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
