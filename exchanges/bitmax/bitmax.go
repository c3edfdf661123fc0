// Package bitmax 实现 BitMax (AscendEX) 现货接口适配
package bitmax

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// Exchange BitMax适配器
type Exchange struct {
	*base.BaseExchange
	client *common.HTTPClient
}

// New 创建BitMax适配器
func New() *Exchange {
	ex := &Exchange{
		BaseExchange: base.NewBaseExchange("bitmax"),
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

// LoadMarkets 加载市场缓存，同时刷新币种缓存
func (e *Exchange) LoadMarkets(ctx context.Context, reload bool) (map[string]*types.Market, error) {
	if reload || e.Markets() == nil {
		currencies, err := e.FetchCurrencies(ctx)
		if err != nil {
			return nil, err
		}
		e.SetCurrencies(currencies)
	}
	return e.LoadMarketsWith(ctx, reload, e.FetchMarkets)
}

// FetchMarkets 获取市场列表
func (e *Exchange) FetchMarkets(ctx context.Context) ([]*types.Market, error) {
	response, err := e.publicGet(ctx, "products", nil)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")
	markets := make([]*types.Market, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			markets = append(markets, e.parseMarket(raw))
		}
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表
func (e *Exchange) FetchCurrencies(ctx context.Context) (map[string]*types.Currency, error) {
	response, err := e.publicGet(ctx, "assets", nil)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")
	currencies := make(map[string]*types.Currency, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			currency := e.parseCurrency(raw)
			currencies[currency.Code] = currency
		}
	}
	return currencies, nil
}

// FetchAccounts 获取账户信息并缓存账户组编号
func (e *Exchange) FetchAccounts(ctx context.Context) ([]*types.Account, error) {
	response, err := e.privateRequest(ctx, http.MethodGet, "info", false, nil, nil)
	if err != nil {
		return nil, err
	}
	data := common.SafeMap(response, "data")
	group := common.SafeString(data, "accountGroup")
	if group != "" {
		e.SetOption("account-group", group)
	}
	accounts := []*types.Account{
		{ID: group, Type: e.accountCategory(), Info: data},
	}
	e.SetAccounts(accounts)
	return accounts, nil
}

// FetchTicker 获取单个行情
func (e *Exchange) FetchTicker(ctx context.Context, symbol string) (*types.Ticker, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	response, err := e.publicGet(ctx, "ticker", map[string]interface{}{"symbol": market.ID})
	if err != nil {
		return nil, err
	}
	data := common.SafeMap(response, "data")
	if data == nil {
		data = response
	}
	return e.parseTicker(data), nil
}

// FetchTickers 批量获取行情，symbols为空时返回全部
func (e *Exchange) FetchTickers(ctx context.Context, symbols ...string) (map[string]*types.Ticker, error) {
	response, err := e.publicGet(ctx, "ticker", nil)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}

	tickers := make(map[string]*types.Ticker)
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		ticker := e.parseTicker(raw)
		if len(wanted) > 0 && !wanted[ticker.Symbol] {
			continue
		}
		tickers[ticker.Symbol] = ticker
	}
	return tickers, nil
}

// FetchOrderBook 获取深度
// 响应为双层data包络，时间戳两层都可能出现
func (e *Exchange) FetchOrderBook(ctx context.Context, symbol string, limit int) (*types.OrderBook, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	response, err := e.publicGet(ctx, "depth", map[string]interface{}{"symbol": market.ID})
	if err != nil {
		return nil, err
	}
	outer := common.SafeMap(response, "data")
	if outer == nil {
		outer = response
	}
	inner := common.SafeMap(outer, "data")
	if inner == nil {
		inner = outer
	}

	timestamp := common.SafeIntegerValue(inner, "ts")
	if timestamp == 0 {
		timestamp = common.SafeIntegerValue(outer, "ts")
	}

	return &types.OrderBook{
		Symbol:    symbol,
		Asks:      parseBookSide(common.SafeSlice(inner, "asks")),
		Bids:      parseBookSide(common.SafeSlice(inner, "bids")),
		Timestamp: timestamp,
		Nonce:     common.SafeIntegerValue(inner, "seqnum"),
		Info:      response,
	}, nil
}

// FetchTrades 获取公开成交
func (e *Exchange) FetchTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := map[string]interface{}{"symbol": market.ID}
	if limit > 0 {
		params["n"] = limit
	}
	response, err := e.publicGet(ctx, "trades", params)
	if err != nil {
		return nil, err
	}
	outer := common.SafeMap(response, "data")
	if outer == nil {
		outer = response
	}
	rows := common.SafeSlice(outer, "data", "trades")

	trades := make([]*types.Trade, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			trades = append(trades, e.parseTrade(raw, symbol))
		}
	}
	return trades, nil
}

// FetchOHLCV 获取K线
func (e *Exchange) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]*types.OHLCV, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	interval, ok := common.ResolveTimeframe(common.BitmaxTimeframes, timeframe)
	if !ok {
		return nil, base.NotSupported(e.Name(), "FetchOHLCV timeframe "+timeframe)
	}
	params := map[string]interface{}{
		"symbol":   market.ID,
		"interval": interval,
	}
	if !since.IsZero() {
		params["from"] = base.SinceMs(since)
	}
	if limit > 0 {
		params["n"] = limit
	}
	response, err := e.publicGet(ctx, "barhist", params)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")
	ohlcvs := make([]*types.OHLCV, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			ohlcvs = append(ohlcvs, parseOHLCV(raw))
		}
	}
	return ohlcvs, nil
}

// FetchBalance 获取当前账户类别的余额
func (e *Exchange) FetchBalance(ctx context.Context) (*types.Balances, error) {
	response, err := e.privateRequest(ctx, http.MethodGet, "balance", true, nil, nil)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")
	return e.parseBalanceRows(rows, response), nil
}

// CreateOrder 创建订单
// 市价单不带价格字段；客户端订单ID为32位随机串
func (e *Exchange) CreateOrder(ctx context.Context, symbol string, orderType types.OrderType, side types.OrderSide, amount, price float64, params map[string]interface{}) (*types.Order, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	amountStr, err := e.AmountToPrecision(symbol, amount)
	if err != nil {
		return nil, err
	}

	coid := common.UUID32()
	timestamp := common.GetTimestamp()
	request := map[string]interface{}{
		"id":        coid,
		"time":      timestamp,
		"symbol":    market.ID,
		"orderQty":  amountStr,
		"orderType": orderType.Lower(),
		"side":      side.Lower(),
	}
	if orderType == types.OrderTypeLimit {
		priceStr, err := e.PriceToPrecision(symbol, price)
		if err != nil {
			return nil, err
		}
		request["orderPrice"] = priceStr
	}
	for k, v := range params {
		request[k] = v
	}

	response, err := e.privateRequest(ctx, http.MethodPost, "order", true, nil, request)
	if err != nil {
		return nil, err
	}
	data := common.SafeMap(response, "data")

	order := &types.Order{
		ID:            common.SafeString(data, "coid", "orderId"),
		ClientOrderID: coid,
		Symbol:        symbol,
		Type:          orderType,
		Side:          side,
		Amount:        &amount,
		Status:        types.OrderStatusOpen,
		Timestamp:     timestamp,
		Info:          data,
	}
	if order.ID == "" {
		order.ID = coid
	}
	if orderType == types.OrderTypeLimit {
		order.Price = &price
	}
	return order, nil
}

// CancelOrder 取消订单
func (e *Exchange) CancelOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	if symbol == "" {
		return nil, base.RequiredArgument("CancelOrder", "symbol")
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	request := map[string]interface{}{
		"id":       common.UUID32(),
		"origCoid": id,
		"symbol":   market.ID,
		"time":     common.GetTimestamp(),
	}
	response, err := e.privateRequest(ctx, http.MethodDelete, "order", true, nil, request)
	if err != nil {
		return nil, err
	}
	return &types.Order{
		ID:     id,
		Symbol: symbol,
		Status: types.OrderStatusCanceled,
		Info:   common.SafeMap(response, "data"),
	}, nil
}

// CancelAllOrders 取消全部订单，symbol为空时不限交易对
func (e *Exchange) CancelAllOrders(ctx context.Context, symbol string) error {
	request := map[string]interface{}{
		"time": common.GetTimestamp(),
	}
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return err
		}
		request["symbol"] = market.ID
	}
	_, err := e.privateRequest(ctx, http.MethodDelete, "order/all", true, nil, request)
	return err
}

// FetchOrder 查询订单
func (e *Exchange) FetchOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	params := map[string]interface{}{"orderId": id}
	response, err := e.privateRequest(ctx, http.MethodGet, "order/status", true, params, nil)
	if err != nil {
		return nil, err
	}
	data := common.SafeMap(response, "data")
	if data == nil {
		return nil, base.NewAPIError(e.Name(), "", "order not found: "+id, base.ErrOrderNotFound)
	}
	return e.parseOrder(data), nil
}

// FetchOrders 查询历史订单
func (e *Exchange) FetchOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrderList(ctx, "order/hist/current", symbol, since, limit, "")
}

// FetchOpenOrders 查询未成交订单
func (e *Exchange) FetchOpenOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrderList(ctx, "order/open", symbol, since, limit, "")
}

// FetchClosedOrders 查询已完成订单
func (e *Exchange) FetchClosedOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrderList(ctx, "order/hist/current", symbol, since, limit, types.OrderStatusClosed)
}

func (e *Exchange) fetchOrderList(ctx context.Context, path, symbol string, since time.Time, limit int, status types.OrderStatus) ([]*types.Order, error) {
	params := map[string]interface{}{}
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return nil, err
		}
		params["symbol"] = market.ID
	}
	if !since.IsZero() {
		params["startTime"] = base.SinceMs(since)
	}
	if limit > 0 {
		params["n"] = limit
	}
	response, err := e.privateRequest(ctx, http.MethodGet, path, true, params, nil)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "data")
	orders := make([]*types.Order, 0, len(rows))
	for _, row := range rows {
		raw := common.AsMap(row)
		if raw == nil {
			continue
		}
		order := e.parseOrder(raw)
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchDepositAddress 获取充值地址
func (e *Exchange) FetchDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error) {
	params := map[string]interface{}{"asset": e.currencyID(code)}
	response, err := e.privateRequest(ctx, http.MethodGet, "wallet/deposit/address", false, params, nil)
	if err != nil {
		return nil, err
	}
	data := common.SafeMap(response, "data")
	addresses := common.SafeSlice(data, "address")
	if len(addresses) == 0 {
		return nil, base.NewAPIError(e.Name(), "", "no deposit address for "+code, base.ErrInvalidAddress)
	}
	raw := common.AsMap(addresses[0])
	if raw == nil {
		return nil, base.NewAPIError(e.Name(), "", "malformed deposit address for "+code, base.ErrInvalidAddress)
	}
	return e.parseDepositAddress(raw, code), nil
}

// currencyID 统一代码转交易所原始币种ID
func (e *Exchange) currencyID(code string) string {
	if currency, ok := e.GetCurrency(code); ok {
		return currency.ID
	}
	return code
}

var _ base.Adapter = (*Exchange)(nil)
