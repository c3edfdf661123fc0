package xena

import (
	"math"

	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// transactionStatuses 充提状态码映射
// 1 新建 2 已完成 3 重复请求 4 余额不足 5 等待人工审核 100-103 处理中
var transactionStatuses = map[string]types.TransactionStatus{
	"1":   types.TransactionPending,
	"2":   types.TransactionOK,
	"3":   types.TransactionFailed,
	"4":   types.TransactionFailed,
	"5":   types.TransactionPending,
	"100": types.TransactionPending,
	"101": types.TransactionPending,
	"102": types.TransactionPending,
	"103": types.TransactionPending,
}

func parseTransactionStatus(status string) types.TransactionStatus {
	if mapped, ok := transactionStatuses[status]; ok {
		return mapped
	}
	return types.TransactionStatus(status)
}

// ledgerEntryTypes 账本流水类型映射
var ledgerEntryTypes = map[string]string{
	"deposit":             "transaction",
	"withdrawal":          "transaction",
	"internal deposit":    "transfer",
	"internal withdrawal": "transfer",
	"rebate":              "rebate",
	"reward":              "reward",
}

func parseLedgerEntryType(kind string) string {
	if mapped, ok := ledgerEntryTypes[kind]; ok {
		return mapped
	}
	return kind
}

// nsToMs 纳秒时间戳转毫秒
func nsToMs(v int64) int64 {
	return v / 1_000_000
}

// parseMarket 市场：仅处理 Spot 和 Margin 两类，Index 等指数品种跳过
// 价格精度取 tickSize 或 pricePrecision，数量精度由 orderQtyStep 推导
func (e *Exchange) parseMarket(raw map[string]interface{}) *types.Market {
	marketType := common.SafeStringLower(raw, "type")
	if marketType != "spot" && marketType != "margin" {
		return nil
	}

	id := common.SafeString(raw, "symbol")
	baseID := common.SafeString(raw, "baseCurrency")
	quoteID := common.SafeString(raw, "quoteCurrency")
	baseCode := e.SafeCurrencyCode(baseID)
	quoteCode := e.SafeCurrencyCode(quoteID)
	symbol := id
	if baseCode != "" && quoteCode != "" {
		symbol = common.NormalizeSymbol(baseCode, quoteCode)
	}

	amountPrecision := 0
	if step := common.SafeString(raw, "orderQtyStep"); step != "" {
		amountPrecision = common.PrecisionFromString(step)
	}

	market := &types.Market{
		ID:        id,
		NumericID: common.SafeIntegerValue(raw, "id"),
		Symbol:    symbol,
		Base:      baseCode,
		Quote:     quoteCode,
		BaseID:    baseID,
		QuoteID:   quoteID,
		Type:      types.MarketType(marketType),
		Active:    common.SafeBool(raw, "enabled", false),
		Precision: types.MarketPrecision{
			Amount: amountPrecision,
			Price:  int(common.SafeIntegerValue(raw, "tickSize", "pricePrecision")),
		},
		Info: raw,
	}
	market.Limits.Cost = types.MinMax{
		Min: common.SafeFloat(raw, "minOrderQuantity"),
		Max: common.SafeFloat(raw, "maxOrderQty"),
	}
	return market
}

// parseCurrency 币种：withdraw子对象携带最小提现额和手续费
func (e *Exchange) parseCurrency(id string, raw map[string]interface{}) *types.Currency {
	precision := int(common.SafeIntegerValue(raw, "precision"))
	currency := &types.Currency{
		ID:        id,
		Code:      e.SafeCurrencyCode(id),
		Name:      common.SafeString(raw, "title"),
		Active:    common.SafeBool(raw, "enabled", false),
		Precision: precision,
		Info:      raw,
	}

	withdraw := common.SafeMap(raw, "withdraw")
	if withdraw != nil {
		currency.Fee = common.SafeFloat(withdraw, "commission")
	}

	unit := math.Pow10(-precision)
	limit := math.Pow10(precision)
	currency.Limits.Amount = types.MinMax{Min: &unit, Max: &limit}
	currency.Limits.Price = types.MinMax{Min: &unit, Max: &limit}
	currency.Limits.Withdraw = types.MinMax{Max: &limit}
	if withdraw != nil {
		currency.Limits.Withdraw.Min = common.SafeFloat(withdraw, "minAmount")
	}
	return currency
}

// parseTrade 成交：transactTime为纳秒，数量取 cumQty，成本优先取 netMoney
func (e *Exchange) parseTrade(raw map[string]interface{}) *types.Trade {
	trade := &types.Trade{
		ID:     common.SafeString(raw, "tradeId"),
		Order:  common.SafeString(raw, "orderId"),
		Symbol: e.SafeSymbol(common.SafeString(raw, "symbol")),
		Type:   types.OrderType(common.SafeStringLower(raw, "ordType")),
		Side:   types.OrderSide(common.SafeStringLower(raw, "side")),
		Price:  common.SafeFloat(raw, "price"),
		Amount: common.SafeFloat(raw, "cumQty"),
		Info:   raw,
	}
	if ts := common.SafeIntegerValue(raw, "transactTime"); ts != 0 {
		trade.Timestamp = nsToMs(ts)
	}

	trade.Cost = common.SafeFloat(raw, "netMoney")
	if trade.Cost == nil && trade.Price != nil && trade.Amount != nil {
		cost := *trade.Price * *trade.Amount
		trade.Cost = &cost
	}

	if fee := common.SafeFloat(raw, "commission"); fee != nil {
		trade.Fee = &types.Fee{
			Cost:     fee,
			Currency: e.SafeCurrencyCode(common.SafeString(raw, "commCurrency")),
		}
	}
	return trade
}

// parseOHLCV K线字段用FIX协议标签编号：
// 60 时间戳（纳秒） 31 开盘 332 最高 333 最低 1025 收盘 330 成交量
func parseOHLCV(raw map[string]interface{}) *types.OHLCV {
	return &types.OHLCV{
		Timestamp: nsToMs(common.SafeIntegerValue(raw, "60")),
		Open:      common.SafeFloatValue(raw, "31"),
		High:      common.SafeFloatValue(raw, "332"),
		Low:       common.SafeFloatValue(raw, "333"),
		Close:     common.SafeFloatValue(raw, "1025"),
		Volume:    common.SafeFloatValue(raw, "330"),
	}
}

// parseTransaction 充提记录：带 withdrawalRequestId 的是提现，否则是充值
func (e *Exchange) parseTransaction(raw map[string]interface{}, code string) *types.Transaction {
	id := common.SafeString(raw, "withdrawalRequestId")
	txType := types.TransactionDeposit
	if id != "" {
		txType = types.TransactionWithdrawal
	}

	currency := e.SafeCurrencyCode(common.SafeString(raw, "currency"))
	if currency == "" {
		currency = code
	}

	address := common.SafeString(raw, "address")
	tx := &types.Transaction{
		ID:       id,
		TxID:     common.SafeString(raw, "txId"),
		Type:     txType,
		Currency: currency,
		Amount:   common.SafeFloat(raw, "amount"),
		Address:  address,
		Status:   parseTransactionStatus(common.SafeString(raw, "status")),
		Info:     raw,
	}
	if txType == types.TransactionDeposit {
		tx.AddressFrom = address
	} else {
		tx.AddressTo = address
	}
	if updated := common.SafeIntegerValue(raw, "lastUpdated"); updated != 0 {
		tx.Updated = nsToMs(updated)
	}
	return tx
}

// parseLedgerEntry 账本流水：金额为负表示流出，统一转为绝对值加方向
func (e *Exchange) parseLedgerEntry(raw map[string]interface{}, code string) *types.LedgerEntry {
	currency := e.SafeCurrencyCode(common.SafeString(raw, "currency"))
	if currency == "" {
		currency = code
	}

	direction := types.LedgerIn
	amount := common.SafeFloat(raw, "amount")
	if amount != nil && *amount < 0 {
		direction = types.LedgerOut
		abs := math.Abs(*amount)
		amount = &abs
	}

	entry := &types.LedgerEntry{
		ID:        common.SafeString(raw, "id"),
		Account:   common.SafeString(raw, "accountId"),
		Type:      parseLedgerEntryType(common.SafeString(raw, "kind")),
		Currency:  currency,
		Direction: direction,
		Amount:    amount,
		After:     common.SafeFloat(raw, "balance"),
		Status:    "ok",
		Info:      raw,
	}
	if ts := common.SafeIntegerValue(raw, "ts"); ts != 0 {
		entry.Timestamp = nsToMs(ts)
	}
	if fee := common.SafeFloat(raw, "commission"); fee != nil {
		entry.Fee = &types.Fee{Cost: fee, Currency: currency}
	}
	return entry
}
