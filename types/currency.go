package types

// Currency 货币信息
type Currency struct {
	ID        string   `json:"id"`             // 货币交易所原始ID
	Code      string   `json:"code"`           // 统一货币代码（大写，经别名表转换），如 "BTC"
	Name      string   `json:"name,omitempty"` // 货币名称
	Active    bool     `json:"active"`         // 是否可用
	Fee       *float64 `json:"fee,omitempty"`  // 提现手续费
	Precision int          `json:"precision"` // 精度位数
	Limits    MarketLimits `json:"limits"`    // 限制
	Info map[string]interface{} `json:"info,omitempty"` // 交易所原始信息
}
