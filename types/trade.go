package types

// TakerOrMaker 吃单或挂单
type TakerOrMaker string

const (
	Taker TakerOrMaker = "taker" // 吃单
	Maker TakerOrMaker = "maker" // 挂单
)

// Trade 成交信息
// 公共成交和私有成交共用同一结构，公共成交通常没有 Order 和 Fee
type Trade struct {
	ID           string                 `json:"id,omitempty"`             // 成交ID
	Order        string                 `json:"order,omitempty"`          // 关联订单ID
	Symbol       string                 `json:"symbol"`                   // 交易对
	Type         OrderType              `json:"type,omitempty"`           // 订单类型
	Side         OrderSide              `json:"side,omitempty"`           // 成交方向
	TakerOrMaker TakerOrMaker           `json:"taker_or_maker,omitempty"` // 吃单或挂单
	Price        *float64               `json:"price,omitempty"`          // 成交价格
	Amount       *float64               `json:"amount,omitempty"`         // 成交数量
	Cost         *float64               `json:"cost,omitempty"`           // 成交金额
	Fee          *Fee                   `json:"fee,omitempty"`            // 手续费
	Timestamp    int64                  `json:"timestamp"`                // 毫秒时间戳
	Info         map[string]interface{} `json:"info,omitempty"`           // 交易所原始信息
}
