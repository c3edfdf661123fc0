package types

// TransactionType 资金记录类型
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"    // 充值
	TransactionWithdrawal TransactionType = "withdrawal" // 提现
)

// TransactionStatus 资金记录状态
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"  // 处理中
	TransactionOK       TransactionStatus = "ok"       // 已完成
	TransactionFailed   TransactionStatus = "failed"   // 已失败
	TransactionCanceled TransactionStatus = "canceled" // 已取消
)

// Transaction 充提记录
type Transaction struct {
	ID          string                 `json:"id,omitempty"`           // 记录ID
	TxID        string                 `json:"txid,omitempty"`         // 链上交易哈希
	Type        TransactionType        `json:"type"`                   // 记录类型
	Currency    string                 `json:"currency"`               // 币种（统一代码）
	Amount      *float64               `json:"amount,omitempty"`       // 金额
	Address     string                 `json:"address,omitempty"`      // 地址
	AddressFrom string                 `json:"address_from,omitempty"` // 来源地址
	AddressTo   string                 `json:"address_to,omitempty"`   // 目标地址
	Tag         string                 `json:"tag,omitempty"`          // 地址标签
	Status      TransactionStatus      `json:"status,omitempty"`       // 记录状态
	Fee         *Fee                   `json:"fee,omitempty"`          // 手续费
	Timestamp   int64                  `json:"timestamp"`              // 毫秒时间戳
	Updated     int64                  `json:"updated,omitempty"`      // 最后更新毫秒时间戳
	Info        map[string]interface{} `json:"info,omitempty"`         // 交易所原始信息
}

// DepositAddress 充值地址
type DepositAddress struct {
	Currency string                 `json:"currency"`       // 币种（统一代码）
	Address  string                 `json:"address"`        // 地址
	Tag      string                 `json:"tag,omitempty"`  // 地址标签
	Info     map[string]interface{} `json:"info,omitempty"` // 交易所原始信息
}
