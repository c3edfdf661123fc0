package common

import (
	"fmt"
	"strings"
)

// NormalizeSymbol 标准化交易对格式为 BASE/QUOTE (如 BTC/USDT)
func NormalizeSymbol(base, quote string) string {
	return strings.ToUpper(base) + "/" + strings.ToUpper(quote)
}

// ParseSymbol 解析标准化交易对 (BTC/USDT -> base, quote)
func ParseSymbol(symbol string) (base, quote string, err error) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid symbol format: %s, expected BASE/QUOTE", symbol)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), nil
}

// SplitMarketID 按分隔符拆分原始市场ID (BTC-USDT / BTC_USDT -> base, quote)
// 不含已知分隔符时返回 false
func SplitMarketID(id string) (base, quote string, ok bool) {
	for _, sep := range []string{"/", "-", "_"} {
		parts := strings.Split(id, sep)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), true
		}
	}
	return "", "", false
}
