package utils

import (
	"math"
	"strconv"
)

// ToPence 把表单里的英镑金额转成便士。
// 解析失败、NaN/Inf、负数一律按 0 处理，宁可归零也不报错。
func ToPence(value string) int64 {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return int64(math.Round(n * 100))
}

// ParseStock 库存按整数解析，最低 0
func ParseStock(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
