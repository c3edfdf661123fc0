// Package latoken 实现 LATOKEN 现货接口适配
package latoken

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// orderStatuses 订单状态映射
var orderStatuses = map[string]types.OrderStatus{
	"active":           types.OrderStatusOpen,
	"partially_filled": types.OrderStatusOpen,
	"filled":           types.OrderStatusClosed,
	"canceled":         types.OrderStatusCanceled,
	"cancelled":        types.OrderStatusCanceled,
}

func parseOrderStatus(status string) types.OrderStatus {
	if mapped, ok := orderStatuses[status]; ok {
		return mapped
	}
	return types.OrderStatus(status)
}

// Exchange LATOKEN适配器
type Exchange struct {
	*base.BaseExchange
	client *common.HTTPClient
}

// New 创建LATOKEN适配器
func New() *Exchange {
	ex := &Exchange{
		BaseExchange: base.NewBaseExchange("latoken"),
		client:       common.NewHTTPClient(defaultBaseURL),
	}
	ex.client.SetRateLimit(rateLimitMs)
	return ex
}

// SetProxy 设置代理
func (e *Exchange) SetProxy(proxyURL string) error {
	e.BaseExchange.SetProxy(proxyURL)
	return e.client.SetProxy(proxyURL)
}

// SetDebug 设置调试模式
func (e *Exchange) SetDebug(debug bool) {
	e.client.SetDebug(debug)
}

// SetBaseURL 设置基础地址
func (e *Exchange) SetBaseURL(baseURL string) {
	e.client.SetBaseURL(baseURL)
}

// SetLogger 设置日志
func (e *Exchange) SetLogger(log *logrus.Entry) {
	e.client.SetLogger(log)
}

// LoadMarkets 加载市场缓存
func (e *Exchange) LoadMarkets(ctx context.Context, reload bool) (map[string]*types.Market, error) {
	return e.LoadMarketsWith(ctx, reload, e.FetchMarkets)
}

// FetchMarkets 获取市场列表
// 市场ID为数字 pairId，价格下限由价格精度推导
func (e *Exchange) FetchMarkets(ctx context.Context) ([]*types.Market, error) {
	body, err := e.publicGet(ctx, "exchangeInfo/pairs", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}

	markets := make([]*types.Market, 0, len(rows))
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		baseID := common.SafeString(raw, "baseCurrency")
		quoteID := common.SafeString(raw, "quotedCurrency")
		baseCode := e.SafeCurrencyCode(baseID)
		quoteCode := e.SafeCurrencyCode(quoteID)
		symbol := common.SafeString(raw, "symbol")
		if symbol == "" {
			symbol = common.NormalizeSymbol(baseCode, quoteCode)
		}

		pricePrecision := int(common.SafeIntegerValue(raw, "pricePrecision"))
		market := &types.Market{
			ID:        common.SafeString(raw, "pairId"),
			NumericID: common.SafeIntegerValue(raw, "pairId"),
			Symbol:    symbol,
			Base:      baseCode,
			Quote:     quoteCode,
			BaseID:    baseID,
			QuoteID:   quoteID,
			Type:      types.MarketTypeSpot,
			Active:    true,
			Taker:     0.001,
			Maker:     0.001,
			Precision: types.MarketPrecision{
				Amount: int(common.SafeIntegerValue(raw, "amountPrecision")),
				Price:  pricePrecision,
			},
			Info: raw,
		}
		market.Limits.Amount = types.MinMax{Min: common.SafeFloat(raw, "minQty")}
		priceMin := math.Pow10(-pricePrecision)
		market.Limits.Price = types.MinMax{Min: &priceMin}
		markets = append(markets, market)
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表
// 精度字段的接口名拼写为 precission
func (e *Exchange) FetchCurrencies(ctx context.Context) (map[string]*types.Currency, error) {
	body, err := e.publicGet(ctx, "exchangeInfo/currencies", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}

	currencies := make(map[string]*types.Currency, len(rows))
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		id := common.SafeString(raw, "symbol")
		code := e.SafeCurrencyCode(id)
		currencies[code] = &types.Currency{
			ID:        id,
			Code:      code,
			Name:      common.SafeString(raw, "name"),
			Active:    true,
			Fee:       common.SafeFloat(raw, "fee"),
			Precision: int(common.SafeIntegerValue(raw, "precission")),
			Info:      raw,
		}
	}
	return currencies, nil
}

// FetchTicker 获取行情
func (e *Exchange) FetchTicker(ctx context.Context, symbol string) (*types.Ticker, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	params.Set("symbol", market.Symbol)
	body, err := e.publicGet(ctx, "marketData/ticker", params)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return e.parseTicker(raw), nil
}

// parseTicker 行情：{pairId, symbol, volume, open, low, high, close, priceChange}
// 接口不带时间戳
func (e *Exchange) parseTicker(raw map[string]interface{}) *types.Ticker {
	last := common.SafeFloat(raw, "close")
	return &types.Ticker{
		Symbol:     e.SafeSymbol(common.SafeString(raw, "symbol")),
		Open:       common.SafeFloat(raw, "open"),
		High:       common.SafeFloat(raw, "high"),
		Low:        common.SafeFloat(raw, "low"),
		Close:      last,
		Last:       last,
		BaseVolume: common.SafeFloat(raw, "volume"),
		Info:       raw,
	}
}

// FetchOrderBook 获取深度，档位为 {price, amount} 对象
func (e *Exchange) FetchOrderBook(ctx context.Context, symbol string, limit int) (*types.OrderBook, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	params.Set("symbol", market.Symbol)
	body, err := e.publicGet(ctx, "marketData/orderBook", params)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return &types.OrderBook{
		Symbol: symbol,
		Asks:   parseBookSide(common.SafeSlice(raw, "asks")),
		Bids:   parseBookSide(common.SafeSlice(raw, "bids")),
		Info:   raw,
	}, nil
}

func parseBookSide(rows []interface{}) []types.BookLevel {
	levels := make([]types.BookLevel, 0, len(rows))
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		price := common.SafeFloat(raw, "price")
		amount := common.SafeFloat(raw, "amount")
		if price == nil || amount == nil {
			continue
		}
		levels = append(levels, types.BookLevel{Price: *price, Amount: *amount})
	}
	return levels
}

// FetchTrades 获取公开成交，包络为 {pairId, symbol, tradeCount, trades}
func (e *Exchange) FetchTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	params.Set("symbol", market.Symbol)
	if limit > 0 {
		params.SetInt("limit", int64(limit))
	}
	body, err := e.publicGet(ctx, "marketData/trades", params)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	rows := common.SafeSlice(raw, "trades")
	trades := make([]*types.Trade, 0, len(rows))
	for _, row := range rows {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		trades = append(trades, &types.Trade{
			Symbol:    symbol,
			Side:      types.OrderSide(common.SafeStringLower(entry, "side")),
			Price:     common.SafeFloat(entry, "price"),
			Amount:    common.SafeFloat(entry, "amount"),
			Timestamp: common.SafeIntegerValue(entry, "timestamp"),
			Info:      entry,
		})
	}
	return trades, nil
}

// FetchMyTrades 查询我的成交，手续费字段的接口名为 commision
func (e *Exchange) FetchMyTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	if symbol == "" {
		return nil, base.RequiredArgument("FetchMyTrades", "symbol")
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	params.Set("symbol", market.Symbol)
	if limit > 0 {
		params.SetInt("limit", int64(limit))
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "order/trades", params)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	rows := common.SafeSlice(raw, "trades")
	trades := make([]*types.Trade, 0, len(rows))
	for _, row := range rows {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		trade := &types.Trade{
			ID:        common.SafeString(entry, "id"),
			Order:     common.SafeString(entry, "orderId"),
			Symbol:    symbol,
			Side:      types.OrderSide(common.SafeStringLower(entry, "side")),
			Price:     common.SafeFloat(entry, "price"),
			Amount:    common.SafeFloat(entry, "amount"),
			Timestamp: common.SafeIntegerValue(entry, "timestamp", "time"),
			Info:      entry,
		}
		if fee := common.SafeFloat(entry, "commision"); fee != nil {
			trade.Fee = &types.Fee{Cost: fee, Currency: market.Quote}
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// FetchBalance 获取余额：[{currencyId, symbol, name, amount, available, frozen, pending}]
func (e *Exchange) FetchBalance(ctx context.Context) (*types.Balances, error) {
	body, err := e.privateRequest(ctx, http.MethodGet, "account/balances", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}

	balances := types.NewBalances()
	balances.Info = rows
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		code := e.SafeCurrencyCode(common.SafeString(raw, "symbol"))
		balances.Set(code, &types.Balance{
			Free:  common.SafeFloat(raw, "available"),
			Used:  common.SafeFloat(raw, "frozen"),
			Total: common.SafeFloat(raw, "amount"),
		})
	}
	return balances, nil
}

// parseOrder 订单：剩余数量字段的接口名拼写为 reaminingAmount
func (e *Exchange) parseOrder(raw map[string]interface{}) *types.Order {
	amount := common.SafeFloat(raw, "amount")
	filled := common.SafeFloat(raw, "executedAmount")
	remaining := common.SafeFloat(raw, "reaminingAmount", "remainingAmount")
	if remaining == nil && amount != nil && filled != nil {
		r := *amount - *filled
		remaining = &r
	}

	order := &types.Order{
		ID:            common.SafeString(raw, "orderId"),
		ClientOrderID: common.SafeString(raw, "cliOrdId"),
		Symbol:        e.SafeSymbol(common.SafeString(raw, "symbol")),
		Type:          types.OrderType(common.SafeStringLower(raw, "orderType")),
		Side:          types.OrderSide(common.SafeStringLower(raw, "side")),
		Price:         common.SafeFloat(raw, "price"),
		Amount:        amount,
		Filled:        filled,
		Remaining:     remaining,
		Status:        parseOrderStatus(common.SafeString(raw, "orderStatus")),
		Timestamp:     common.SafeIntegerValue(raw, "timeCreated"),
		Info:          raw,
	}
	if order.Price != nil && filled != nil {
		cost := *order.Price * *filled
		order.Cost = &cost
	}
	return order
}

// CreateOrder 创建订单，仅支持限价单
func (e *Exchange) CreateOrder(ctx context.Context, symbol string, orderType types.OrderType, side types.OrderSide, amount, price float64, params map[string]interface{}) (*types.Order, error) {
	if orderType != types.OrderTypeLimit {
		return nil, base.NotSupported(e.Name(), "CreateOrder type "+string(orderType))
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	amountStr, err := e.AmountToPrecision(symbol, amount)
	if err != nil {
		return nil, err
	}
	priceStr, err := e.PriceToPrecision(symbol, price)
	if err != nil {
		return nil, err
	}

	cliOrdID := common.GenerateClientOrderID(e.Name())
	request := types.NewParams()
	request.Set("symbol", market.Symbol)
	request.Set("cliOrdId", cliOrdID)
	request.Set("side", side.Lower())
	request.Set("price", priceStr)
	request.Set("amount", amountStr)
	request.Set("orderType", orderType.Lower())
	request.Set("timeAlive", "GTC")

	body, err := e.privateRequest(ctx, http.MethodPost, "order/new", request)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	order := e.parseOrder(raw)
	if order.ID == "" {
		order.ID = cliOrdID
	}
	if order.Status == "" {
		order.Status = types.OrderStatusOpen
	}
	if order.Symbol == "" {
		order.Symbol = symbol
	}
	if order.Timestamp == 0 {
		order.Timestamp = common.GetTimestamp()
	}
	return order, nil
}

// CancelOrder 取消订单
func (e *Exchange) CancelOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	if id == "" {
		return nil, base.RequiredArgument("CancelOrder", "id")
	}
	request := types.NewParams()
	request.Set("orderId", id)
	body, err := e.privateRequest(ctx, http.MethodPost, "order/cancel", request)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return e.parseOrder(raw), nil
}

// CancelAllOrders 取消指定交易对的全部订单
func (e *Exchange) CancelAllOrders(ctx context.Context, symbol string) error {
	if symbol == "" {
		return base.RequiredArgument("CancelAllOrders", "symbol")
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return err
	}
	request := types.NewParams()
	request.Set("symbol", market.Symbol)
	_, err = e.privateRequest(ctx, http.MethodPost, "order/cancel_all", request)
	return err
}

// FetchOrder 查询订单
func (e *Exchange) FetchOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	request := types.NewParams()
	request.Set("orderId", id)
	body, err := e.privateRequest(ctx, http.MethodGet, "order/get_order", request)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, base.NewAPIError(e.Name(), "", "order not found: "+id, base.ErrOrderNotFound)
	}
	return e.parseOrder(raw), nil
}

// FetchOpenOrders 查询未成交订单
func (e *Exchange) FetchOpenOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrdersByStatus(ctx, symbol, "active", limit)
}

// FetchClosedOrders 查询已完成订单
func (e *Exchange) FetchClosedOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrdersByStatus(ctx, symbol, "filled", limit)
}

// fetchOrdersByStatus 按状态查询订单列表
func (e *Exchange) fetchOrdersByStatus(ctx context.Context, symbol, status string, limit int) ([]*types.Order, error) {
	params := types.NewParams()
	params.Set("status", status)
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return nil, err
		}
		params.Set("symbol", market.Symbol)
	}
	if limit > 0 {
		params.SetInt("limit", int64(limit))
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "order/status", params)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	orders := make([]*types.Order, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			orders = append(orders, e.parseOrder(raw))
		}
	}
	return orders, nil
}

var _ base.Adapter = (*Exchange)(nil)
