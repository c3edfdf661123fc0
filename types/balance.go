package types

// Balance 单币种余额
type Balance struct {
	Free  *float64 `json:"free,omitempty"`  // 可用余额
	Used  *float64 `json:"used,omitempty"`  // 冻结余额
	Total *float64 `json:"total,omitempty"` // 总余额
}

// Balances 账户余额，按统一币种代码索引
type Balances struct {
	Assets map[string]*Balance `json:"assets"`          // 币种余额
	Info   interface{}         `json:"info,omitempty"`  // 交易所原始信息
}

// NewBalances 创建空余额
func NewBalances() *Balances {
	return &Balances{Assets: make(map[string]*Balance)}
}

// Set 写入指定币种余额，缺失项按 total=free+used 或 used=total-free 补全
func (b *Balances) Set(code string, bal *Balance) {
	if bal.Total == nil && bal.Free != nil && bal.Used != nil {
		total := *bal.Free + *bal.Used
		bal.Total = &total
	}
	if bal.Used == nil && bal.Total != nil && bal.Free != nil {
		used := *bal.Total - *bal.Free
		bal.Used = &used
	}
	if bal.Free == nil && bal.Total != nil && bal.Used != nil {
		free := *bal.Total - *bal.Used
		bal.Free = &free
	}
	b.Assets[code] = bal
}

// Get 读取指定币种余额，不存在时返回零值余额
func (b *Balances) Get(code string) *Balance {
	if bal, ok := b.Assets[code]; ok {
		return bal
	}
	return &Balance{}
}
