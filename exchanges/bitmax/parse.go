package bitmax

import (
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// orderStatuses 订单状态映射，未识别的状态原样透传
var orderStatuses = map[string]types.OrderStatus{
	"PendingNew":      types.OrderStatusOpen,
	"New":             types.OrderStatusOpen,
	"PartiallyFilled": types.OrderStatusOpen,
	"Filled":          types.OrderStatusClosed,
	"Canceled":        types.OrderStatusCanceled,
	"Rejected":        types.OrderStatusRejected,
}

func parseOrderStatus(status string) types.OrderStatus {
	if mapped, ok := orderStatuses[status]; ok {
		return mapped
	}
	return types.OrderStatus(status)
}

// parseMarket 市场：{symbol, baseAsset, quoteAsset, status, minNotional, maxNotional, tickSize, lotSize}
func (e *Exchange) parseMarket(raw map[string]interface{}) *types.Market {
	id := common.SafeString(raw, "symbol")
	baseID := common.SafeString(raw, "baseAsset")
	quoteID := common.SafeString(raw, "quoteAsset")
	baseCode := e.SafeCurrencyCode(baseID)
	quoteCode := e.SafeCurrencyCode(quoteID)

	market := &types.Market{
		ID:     id,
		Symbol: common.NormalizeSymbol(baseCode, quoteCode),
		Base:   baseCode,
		Quote:  quoteCode,
		BaseID: baseID, QuoteID: quoteID,
		Type:   types.MarketTypeSpot,
		Active: common.SafeString(raw, "status") == "Normal",
		Precision: types.MarketPrecision{
			Amount: common.PrecisionFromString(common.SafeString(raw, "lotSize")),
			Price:  common.PrecisionFromString(common.SafeString(raw, "tickSize")),
		},
		Info: raw,
	}
	market.Limits.Cost = types.MinMax{
		Min: common.SafeFloat(raw, "minNotional"),
		Max: common.SafeFloat(raw, "maxNotional"),
	}
	market.Limits.Amount = types.MinMax{Min: common.SafeFloat(raw, "minQty")}
	return market
}

// parseCurrency 币种：{assetCode, assetName, precisionScale, withdrawalFee, minWithdrawalAmt, status}
func (e *Exchange) parseCurrency(raw map[string]interface{}) *types.Currency {
	id := common.SafeString(raw, "assetCode")
	currency := &types.Currency{
		ID:        id,
		Code:      e.SafeCurrencyCode(id),
		Name:      common.SafeString(raw, "assetName"),
		Active:    common.SafeString(raw, "status") == "Normal",
		Fee:       common.SafeFloat(raw, "withdrawalFee"),
		Precision: int(common.SafeIntegerValue(raw, "precisionScale")),
		Info:      raw,
	}
	currency.Limits.Withdraw = types.MinMax{Min: common.SafeFloat(raw, "minWithdrawalAmt")}
	return currency
}

// parseTicker 行情：{symbol, open, close, high, low, volume, ask:[价,量], bid:[价,量]}
// 接口不带时间戳，取本地时间对齐到分钟
func (e *Exchange) parseTicker(raw map[string]interface{}) *types.Ticker {
	now := common.GetTimestamp()
	ticker := &types.Ticker{
		Symbol:     e.SafeSymbol(common.SafeString(raw, "symbol")),
		Timestamp:  now - now%60000,
		Open:       common.SafeFloat(raw, "open"),
		High:       common.SafeFloat(raw, "high"),
		Low:        common.SafeFloat(raw, "low"),
		Close:      common.SafeFloat(raw, "close"),
		Last:       common.SafeFloat(raw, "close"),
		BaseVolume: common.SafeFloat(raw, "volume"),
		Info:       raw,
	}
	if pair := common.SafeSlice(raw, "ask"); len(pair) >= 2 {
		ticker.Ask = common.ToFloat(pair[0])
		ticker.AskVolume = common.ToFloat(pair[1])
	}
	if pair := common.SafeSlice(raw, "bid"); len(pair) >= 2 {
		ticker.Bid = common.ToFloat(pair[0])
		ticker.BidVolume = common.ToFloat(pair[1])
	}
	return ticker
}

// parseBookSide 深度档位 [["价","量"],...]，保持接口返回顺序
func parseBookSide(rows []interface{}) []types.BookLevel {
	levels := make([]types.BookLevel, 0, len(rows))
	for _, row := range rows {
		pair, ok := row.([]interface{})
		if !ok || len(pair) < 2 {
			continue
		}
		price := common.ToFloat(pair[0])
		amount := common.ToFloat(pair[1])
		if price == nil || amount == nil {
			continue
		}
		levels = append(levels, types.BookLevel{Price: *price, Amount: *amount})
	}
	return levels
}

// parseTrade 公开成交：{p, q, ts, bm}
// bm为true表示买方是挂单方
func (e *Exchange) parseTrade(raw map[string]interface{}, symbol string) *types.Trade {
	buyerIsMaker := common.SafeBool(raw, "bm", false)
	side := types.OrderSideSell
	takerOrMaker := types.Taker
	if buyerIsMaker {
		side = types.OrderSideBuy
		takerOrMaker = types.Maker
	}
	price := common.SafeFloat(raw, "p")
	amount := common.SafeFloat(raw, "q")
	trade := &types.Trade{
		Symbol:       symbol,
		Side:         side,
		TakerOrMaker: takerOrMaker,
		Price:        price,
		Amount:       amount,
		Timestamp:    common.SafeIntegerValue(raw, "ts"),
		Info:         raw,
	}
	if price != nil && amount != nil {
		cost := *price * *amount
		trade.Cost = &cost
	}
	return trade
}

// parseOHLCV K线：{m:"bar", s, data:{ts, o, c, h, l, v}}
func parseOHLCV(raw map[string]interface{}) *types.OHLCV {
	data := common.SafeMap(raw, "data")
	if data == nil {
		data = raw
	}
	return &types.OHLCV{
		Timestamp: common.SafeIntegerValue(data, "ts"),
		Open:      common.SafeFloatValue(data, "o"),
		High:      common.SafeFloatValue(data, "h"),
		Low:       common.SafeFloatValue(data, "l"),
		Close:     common.SafeFloatValue(data, "c"),
		Volume:    common.SafeFloatValue(data, "v"),
	}
}

// parseOrder 订单：{orderId, symbol, price, orderQty, orderType, side, status, avgPx, cumFilledQty, cumFee, feeAsset, lastExecTime}
// 市价单的价格字段为0，按成交金额除以成交量回填；成交金额按均价乘以成交量推算
func (e *Exchange) parseOrder(raw map[string]interface{}) *types.Order {
	status := parseOrderStatus(common.SafeString(raw, "status"))
	orderType := types.OrderType(common.SafeStringLower(raw, "orderType"))

	price := common.SafeFloat(raw, "price", "orderPrice")
	amount := common.SafeFloat(raw, "orderQty", "qty")
	filled := common.SafeFloat(raw, "cumFilledQty", "filledQty")
	average := common.SafeFloat(raw, "avgPx", "avgPrice")

	if orderType == types.OrderTypeMarket && price != nil && *price == 0 {
		price = nil
		if average != nil && filled != nil && *filled > 0 {
			cost := *average * *filled
			backfill := cost / *filled
			price = &backfill
		}
	}

	order := &types.Order{
		ID:            common.SafeString(raw, "orderId", "coid"),
		ClientOrderID: common.SafeString(raw, "id"),
		Symbol:        e.SafeSymbol(common.SafeString(raw, "symbol")),
		Type:          orderType,
		Side:          types.OrderSide(common.SafeStringLower(raw, "side")),
		Price:         price,
		Amount:        amount,
		Filled:        filled,
		Average:       average,
		Status:        status,
		Timestamp:     common.SafeIntegerValue(raw, "lastExecTime", "time", "sendingTime"),
		Info:          raw,
	}
	if average != nil && filled != nil {
		cost := *average * *filled
		order.Cost = &cost
	}
	if amount != nil && filled != nil {
		remaining := *amount - *filled
		order.Remaining = &remaining
	}
	if feeCost := common.SafeFloat(raw, "cumFee", "fee"); feeCost != nil {
		order.Fee = &types.Fee{
			Cost:     feeCost,
			Currency: e.SafeCurrencyCode(common.SafeString(raw, "feeAsset")),
		}
	}
	return order
}

// parseBalanceRows 余额：[{asset, totalBalance, availableBalance}]
// 杠杆账户字段名为 totalAmount/availableAmount
func (e *Exchange) parseBalanceRows(rows []interface{}, info interface{}) *types.Balances {
	balances := types.NewBalances()
	balances.Info = info
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		code := e.SafeCurrencyCode(common.SafeString(raw, "asset"))
		balances.Set(code, &types.Balance{
			Free:  common.SafeFloat(raw, "availableBalance", "availableAmount"),
			Total: common.SafeFloat(raw, "totalBalance", "totalAmount"),
		})
	}
	return balances
}

// parseDepositAddress 充值地址：{address, destTag}
func (e *Exchange) parseDepositAddress(raw map[string]interface{}, code string) *types.DepositAddress {
	return &types.DepositAddress{
		Currency: code,
		Address:  common.SafeString(raw, "address"),
		Tag:      common.SafeString(raw, "destTag", "tagValue"),
		Info:     raw,
	}
}
