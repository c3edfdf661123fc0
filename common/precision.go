package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PrecisionFromString 从最小步长字符串推导小数位数
// "0.00001" -> 5, "0.100" -> 1, "1" -> 0, "1e-8" -> 8
func PrecisionFromString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	// String() 去掉末尾多余的0，"0.100" 归一为 "0.1"
	if i := strings.IndexByte(d.String(), '.'); i >= 0 {
		return len(d.String()) - i - 1
	}
	return 0
}

// DecimalToPrecision 按小数位数量化数值，四舍五入，返回无科学计数法的字符串
func DecimalToPrecision(value float64, precision int) string {
	return decimal.NewFromFloat(value).Round(int32(precision)).String()
}

// DecimalTruncate 按小数位数向零截断数值，返回无科学计数法的字符串
// 下单数量使用截断，避免超出可用余额
func DecimalTruncate(value float64, precision int) string {
	return decimal.NewFromFloat(value).Truncate(int32(precision)).String()
}

// FloatToString 浮点数转无科学计数法字符串
func FloatToString(value float64) string {
	return decimal.NewFromFloat(value).String()
}
