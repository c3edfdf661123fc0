package types

// OHLCV K线数据，时间戳为毫秒
type OHLCV struct {
	Timestamp int64   `json:"timestamp"` // 开盘毫秒时间戳
	Open      float64 `json:"open"`      // 开盘价
	High      float64 `json:"high"`      // 最高价
	Low       float64 `json:"low"`       // 最低价
	Close     float64 `json:"close"`     // 收盘价
	Volume    float64 `json:"volume"`    // 成交量
}

// Account 交易账户
type Account struct {
	ID       string                 `json:"id"`                 // 账户ID
	Type     string                 `json:"type,omitempty"`     // 账户类型（spot/margin/futures 等）
	Currency string                 `json:"currency,omitempty"` // 账户币种
	Info     map[string]interface{} `json:"info,omitempty"`     // 交易所原始信息
}
