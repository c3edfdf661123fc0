package types

// BookLevel 订单簿档位
type BookLevel struct {
	Price  float64 `json:"price"`  // 价格
	Amount float64 `json:"amount"` // 数量
}

// OrderBook 订单簿
// Asks 按价格从低到高，Bids 按价格从高到低（以交易所返回顺序为准，解析层不重排）
type OrderBook struct {
	Symbol    string                 `json:"symbol"`          // 交易对
	Asks      []BookLevel            `json:"asks"`            // 卖单列表
	Bids      []BookLevel            `json:"bids"`            // 买单列表
	Timestamp int64                  `json:"timestamp"`       // 毫秒时间戳
	Nonce     int64                  `json:"nonce,omitempty"` // 序列号（交易所提供时）
	Info      map[string]interface{} `json:"info,omitempty"`  // 交易所原始信息
}
