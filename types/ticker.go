package types

// Ticker 行情快照
// 缺失的数值字段为 nil，表示交易所未报告，区别于 0
type Ticker struct {
	Symbol      string                 `json:"symbol"`                 // 交易对
	Timestamp   int64                  `json:"timestamp"`              // 毫秒时间戳
	Bid         *float64               `json:"bid,omitempty"`          // 买一价
	BidVolume   *float64               `json:"bid_volume,omitempty"`   // 买一量
	Ask         *float64               `json:"ask,omitempty"`          // 卖一价
	AskVolume   *float64               `json:"ask_volume,omitempty"`   // 卖一量
	High        *float64               `json:"high,omitempty"`         // 最高价
	Low         *float64               `json:"low,omitempty"`          // 最低价
	Open        *float64               `json:"open,omitempty"`         // 开盘价
	Close       *float64               `json:"close,omitempty"`        // 收盘价
	Last        *float64               `json:"last,omitempty"`         // 最新价
	BaseVolume  *float64               `json:"base_volume,omitempty"`  // 24小时成交量（基础货币）
	QuoteVolume *float64               `json:"quote_volume,omitempty"` // 24小时成交额（计价货币）
	Info        map[string]interface{} `json:"info,omitempty"`         // 交易所原始信息
}
