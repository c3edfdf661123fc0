package types

import "strings"

// OrderSide 订单方向
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"  // 买入
	OrderSideSell OrderSide = "sell" // 卖出
)

func (s OrderSide) Upper() string {
	return strings.ToUpper(string(s))
}

func (s OrderSide) Lower() string {
	return strings.ToLower(string(s))
}

// OrderType 订单类型
type OrderType string

const (
	OrderTypeMarket OrderType = "market" // 市价单
	OrderTypeLimit  OrderType = "limit"  // 限价单
)

func (t OrderType) Lower() string {
	return strings.ToLower(string(t))
}

// OrderStatus 订单状态（统一投影）
// 交易所原始状态经各适配器的固定映射表转换；未识别的状态原样透传，便于发现接口变更
type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "open"     // 未完全成交
	OrderStatusClosed   OrderStatus = "closed"   // 已完全成交
	OrderStatusCanceled OrderStatus = "canceled" // 已取消
	OrderStatusRejected OrderStatus = "rejected" // 已拒绝
)

// Fee 手续费
type Fee struct {
	Cost     *float64 `json:"cost,omitempty"`     // 手续费金额
	Currency string   `json:"currency,omitempty"` // 手续费币种（统一代码）
	Rate     *float64 `json:"rate,omitempty"`     // 手续费率
}

// Order 订单信息
type Order struct {
	ID            string                 `json:"id"`                        // 订单ID
	ClientOrderID string                 `json:"client_order_id,omitempty"` // 客户端订单ID
	Symbol        string                 `json:"symbol"`                    // 交易对
	Type          OrderType              `json:"type,omitempty"`            // 订单类型
	Side          OrderSide              `json:"side,omitempty"`            // 订单方向
	Price         *float64               `json:"price,omitempty"`           // 订单价格
	Amount        *float64               `json:"amount,omitempty"`          // 订单数量
	Filled        *float64               `json:"filled,omitempty"`          // 已成交数量
	Remaining     *float64               `json:"remaining,omitempty"`       // 剩余数量
	Average       *float64               `json:"average,omitempty"`         // 平均成交价格
	Cost          *float64               `json:"cost,omitempty"`            // 成交金额
	Status        OrderStatus            `json:"status,omitempty"`          // 订单状态
	Fee           *Fee                   `json:"fee,omitempty"`             // 手续费，原始数据无手续费信息时整体为 nil
	Trades        []*Trade               `json:"trades,omitempty"`          // 关联成交记录
	Timestamp     int64                  `json:"timestamp"`                 // 毫秒时间戳
	Info          map[string]interface{} `json:"info,omitempty"`            // 交易所原始信息
}
