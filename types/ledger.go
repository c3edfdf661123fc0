package types

// LedgerDirection 资金流向
type LedgerDirection string

const (
	LedgerIn  LedgerDirection = "in"  // 流入
	LedgerOut LedgerDirection = "out" // 流出
)

// LedgerEntry 账本流水
// Amount 恒为非负数，方向由 Direction 表示
type LedgerEntry struct {
	ID        string                 `json:"id,omitempty"`        // 流水ID
	Account   string                 `json:"account,omitempty"`   // 账户ID
	Type      string                 `json:"type,omitempty"`      // 流水类型（transaction/transfer/trade/fee/rebate/reward 等）
	Currency  string                 `json:"currency"`            // 币种（统一代码）
	Direction LedgerDirection        `json:"direction"`           // 资金流向
	Amount    *float64               `json:"amount,omitempty"`    // 金额（绝对值）
	Before    *float64               `json:"before,omitempty"`    // 变动前余额
	After     *float64               `json:"after,omitempty"`     // 变动后余额
	Fee       *Fee                   `json:"fee,omitempty"`       // 手续费
	Status    string                 `json:"status,omitempty"`    // 状态
	Timestamp int64                  `json:"timestamp"`           // 毫秒时间戳
	Info      map[string]interface{} `json:"info,omitempty"`      // 交易所原始信息
}
