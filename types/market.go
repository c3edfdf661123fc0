package types

import "github.com/shopspring/decimal"

// MarketType 市场类型
type MarketType string

const (
	MarketTypeSpot   MarketType = "spot"   // 现货
	MarketTypeMargin MarketType = "margin" // 杠杆
)

// MinMax 数值范围限制
type MinMax struct {
	Min *float64 `json:"min,omitempty"` // 最小值
	Max *float64 `json:"max,omitempty"` // 最大值
}

// MarketPrecision 市场精度（小数位数）
type MarketPrecision struct {
	Amount int `json:"amount"` // 数量精度
	Price  int `json:"price"`  // 价格精度
}

// MarketLimits 市场限制
type MarketLimits struct {
	Amount   MinMax `json:"amount"`             // 数量限制
	Price    MinMax `json:"price"`              // 价格限制
	Cost     MinMax `json:"cost"`               // 成本限制
	Withdraw MinMax `json:"withdraw,omitempty"` // 提现限制
}

// Market 市场信息
type Market struct {
	ID        string     `json:"id"`                   // 市场ID，交易所原始格式，如 "BTC/USDT" 或 "BTCUSDT"
	NumericID int64      `json:"numeric_id,omitempty"` // 数字ID（部分交易所使用，如 Latoken pairId）
	Symbol    string     `json:"symbol"`               // 交易对符号（统一格式），如 "BTC/USDT"
	Base      string     `json:"base"`                 // 基础货币（统一代码），如 "BTC"
	Quote     string     `json:"quote"`                // 计价货币（统一代码），如 "USDT"
	BaseID    string     `json:"base_id"`              // 基础货币交易所原始ID
	QuoteID   string     `json:"quote_id"`             // 计价货币交易所原始ID
	Type      MarketType `json:"type,omitempty"`       // 市场类型
	Active    bool       `json:"active"`               // 是否活跃
	Taker     float64    `json:"taker,omitempty"`      // taker 费率
	Maker     float64    `json:"maker,omitempty"`      // maker 费率
	Precision MarketPrecision `json:"precision"` // 精度
	Limits    MarketLimits    `json:"limits"`    // 限制
	Info map[string]interface{} `json:"info,omitempty"` // 交易所原始信息
}

// TickSize 返回价格最小变动单位（10^-precision）
func (m *Market) TickSize() decimal.Decimal {
	return decimal.New(1, -int32(m.Precision.Price))
}

// LotSize 返回数量最小变动单位（10^-precision）
func (m *Market) LotSize() decimal.Decimal {
	return decimal.New(1, -int32(m.Precision.Amount))
}
