// Package kkex 实现 KKEX 现货接口适配
// 公共接口走 v1，私有接口走 v2 表单签名
package kkex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

const (
	defaultBaseURL = "https://kkex.com"
	publicPrefix   = "/api/v1"
	privatePrefix  = "/api/v2"
	rateLimitMs    = 1000

	defaultHistoryLimit = 20
)

// orderStatuses 订单状态映射，接口返回整数状态码
var orderStatuses = map[string]types.OrderStatus{
	"-1": types.OrderStatusCanceled,
	"0":  types.OrderStatusOpen,
	"1":  types.OrderStatusOpen,
	"2":  types.OrderStatusClosed,
	"3":  types.OrderStatusOpen,
	"4":  types.OrderStatusCanceled,
}

// Exchange KKEX适配器
type Exchange struct {
	*base.BaseExchange
	client *common.HTTPClient
}

// New 创建KKEX适配器
func New() *Exchange {
	ex := &Exchange{
		BaseExchange: base.NewBaseExchange("kkex"),
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

// publicGet 公共接口GET请求
func (e *Exchange) publicGet(ctx context.Context, path string, params map[string]interface{}) (map[string]interface{}, error) {
	body, err := e.client.Get(ctx, publicPrefix+"/"+path, params)
	if err != nil {
		return nil, err
	}
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return response, nil
}

// privatePost 私有接口POST请求
// 签名为 nonce、api_key 和业务参数按键排序后URL编码，
// 追加 secret_key 再做MD5大写摘要；请求体为表单编码
func (e *Exchange) privatePost(ctx context.Context, path string, params *types.Params) (map[string]interface{}, error) {
	if err := e.RequireCredentials(); err != nil {
		return nil, err
	}
	if params == nil {
		params = types.NewParams()
	}
	nonce := common.GetTimestamp()

	toSign := types.NewParams()
	toSign.SetInt("nonce", nonce)
	toSign.Set("api_key", e.APIKey())
	for key, value := range params.EncodeMap() {
		if s, ok := value.(string); ok {
			toSign.Set(key, s)
		}
	}
	toSign.Set("secret_key", e.Secret())
	signature := common.HashMD5Upper(toSign.EncodeSortedQuery())

	form := types.NewParams()
	form.Set("api_key", e.APIKey())
	form.Set("sign", signature)
	form.SetInt("nonce", nonce)
	for key, value := range params.EncodeMap() {
		if s, ok := value.(string); ok {
			form.Set(key, s)
		}
	}

	body, err := e.client.Do(ctx, http.MethodPost, privatePrefix+"/"+path, nil,
		"application/x-www-form-urlencoded", []byte(form.EncodeQuery()))
	if err != nil {
		var httpErr *common.HTTPError
		if !errors.As(err, &httpErr) {
			return nil, err
		}
	}

	var response map[string]interface{}
	if decodeErr := json.Unmarshal(body, &response); decodeErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if result, ok := response["result"].(bool); ok && !result {
		code := common.SafeString(response, "error_code")
		return nil, base.TranslateError(e.Name(), code, common.SafeString(response, "error_msg", "message"), nil, nil)
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}

// LoadMarkets 加载市场缓存
func (e *Exchange) LoadMarkets(ctx context.Context, reload bool) (map[string]*types.Market, error) {
	return e.LoadMarketsWith(ctx, reload, e.FetchMarkets)
}

// FetchMarkets 获取市场列表
// 市场ID来自行情列表的键，精度和限制从产品列表按 mark_asset+base_asset 匹配
func (e *Exchange) FetchMarkets(ctx context.Context) ([]*types.Market, error) {
	tickersResp, err := e.publicGet(ctx, "tickers", nil)
	if err != nil {
		return nil, err
	}
	productsResp, err := e.publicGet(ctx, "products", nil)
	if err != nil {
		return nil, err
	}

	products := common.SafeSlice(productsResp, "products")
	result := make([]*types.Market, 0)
	for _, row := range common.SafeSlice(tickersResp, "tickers") {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		for id := range entry {
			result = append(result, e.buildMarket(id, products))
		}
	}
	return result, nil
}

func (e *Exchange) buildMarket(id string, products []interface{}) *types.Market {
	market := &types.Market{
		ID:     id,
		Active: true,
		Type:   types.MarketTypeSpot,
		Info:   map[string]interface{}{"id": id},
	}
	for _, row := range products {
		p := common.AsMap(row)
		if p == nil {
			continue
		}
		markAsset := common.SafeString(p, "mark_asset")
		baseAsset := common.SafeString(p, "base_asset")
		if markAsset+baseAsset != id {
			continue
		}
		// mark_asset 是基础货币，base_asset 是计价货币
		market.BaseID = markAsset
		market.QuoteID = baseAsset
		scale := priceScale(common.SafeString(p, "price_scale"))
		market.Precision = types.MarketPrecision{Amount: scale, Price: scale}
		market.Limits.Amount = types.MinMax{
			Min: minFloat(common.SafeFloat(p, "min_bid_size"), common.SafeFloat(p, "min_ask_size")),
			Max: maxFloat(common.SafeFloat(p, "max_bid_size"), common.SafeFloat(p, "max_ask_size")),
		}
		market.Limits.Price = types.MinMax{
			Min: common.SafeFloat(p, "min_price"),
			Max: common.SafeFloat(p, "max_price"),
		}
		market.Limits.Cost = types.MinMax{
			Min: common.SafeFloat(p, "min_bid_amount"),
			Max: common.SafeFloat(p, "max_bid_amount"),
		}
		market.Info = p
		break
	}
	market.Base = e.SafeCurrencyCode(market.BaseID)
	market.Quote = e.SafeCurrencyCode(market.QuoteID)
	market.Symbol = common.NormalizeSymbol(market.Base, market.Quote)
	return market
}

// priceScale 精度位数为10的幂次字符串长度减一，如 "1000" 对应3位小数
func priceScale(s string) int {
	if len(s) == 0 {
		return 0
	}
	return len(s) - 1
}

func minFloat(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil || *a < *b {
		return a
	}
	return b
}

func maxFloat(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil || *a > *b {
		return a
	}
	return b
}

// parseTicker 行情：{high, low, buy, sell, last, vol}，时间戳为秒
func parseTicker(raw map[string]interface{}, symbol string, dateSeconds int64) *types.Ticker {
	last := common.SafeFloat(raw, "last")
	return &types.Ticker{
		Symbol:     symbol,
		Timestamp:  dateSeconds * 1000,
		High:       common.SafeFloat(raw, "high"),
		Low:        common.SafeFloat(raw, "low"),
		Bid:        common.SafeFloat(raw, "buy"),
		Ask:        common.SafeFloat(raw, "sell"),
		Close:      last,
		Last:       last,
		BaseVolume: common.SafeFloat(raw, "vol"),
		Info:       raw,
	}
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
	raw := common.SafeMap(response, "ticker")
	if raw == nil {
		return nil, base.NewAPIError(e.Name(), "", "missing ticker payload", base.ErrExchange)
	}
	return parseTicker(raw, symbol, common.SafeIntegerValue(response, "date")), nil
}

// FetchTickers 批量获取行情，symbols为空时返回全部
func (e *Exchange) FetchTickers(ctx context.Context, symbols ...string) (map[string]*types.Ticker, error) {
	response, err := e.publicGet(ctx, "tickers", nil)
	if err != nil {
		return nil, err
	}
	date := common.SafeIntegerValue(response, "date")

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}

	result := make(map[string]*types.Ticker)
	for _, row := range common.SafeSlice(response, "tickers") {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		for id, value := range entry {
			raw := common.AsMap(value)
			if raw == nil {
				continue
			}
			symbol := e.SafeSymbol(id)
			if len(wanted) > 0 && !wanted[symbol] {
				continue
			}
			result[symbol] = parseTicker(raw, symbol, date)
		}
	}
	return result, nil
}

// FetchOrderBook 获取深度
func (e *Exchange) FetchOrderBook(ctx context.Context, symbol string, limit int) (*types.OrderBook, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := map[string]interface{}{"symbol": market.ID}
	if limit > 0 {
		params["size"] = limit
	}
	response, err := e.publicGet(ctx, "depth", params)
	if err != nil {
		return nil, err
	}
	return &types.OrderBook{
		Symbol:    symbol,
		Asks:      parseBookSide(common.SafeSlice(response, "asks")),
		Bids:      parseBookSide(common.SafeSlice(response, "bids")),
		Timestamp: common.SafeIntegerValue(response, "timestamp"),
		Info:      response,
	}, nil
}

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

// parseTrade 公开成交：{date_ms, tid, type, price, amount}
func parseTrade(raw map[string]interface{}, symbol string) *types.Trade {
	return &types.Trade{
		ID:        common.SafeString(raw, "tid"),
		Symbol:    symbol,
		Type:      types.OrderTypeLimit,
		Side:      types.OrderSide(common.SafeStringLower(raw, "type")),
		Price:     common.SafeFloat(raw, "price"),
		Amount:    common.SafeFloat(raw, "amount"),
		Timestamp: common.SafeIntegerValue(raw, "date_ms"),
		Info:      raw,
	}
}

// FetchTrades 获取公开成交
func (e *Exchange) FetchTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	body, err := e.client.Get(ctx, publicPrefix+"/trades", map[string]interface{}{"symbol": market.ID})
	if err != nil {
		return nil, err
	}
	var rows []interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	trades := make([]*types.Trade, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			trades = append(trades, parseTrade(raw, symbol))
		}
	}
	return trades, nil
}

// FetchOHLCV 获取K线，响应为 [ts, o, h, l, c, v] 数组
func (e *Exchange) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]*types.OHLCV, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	interval, ok := common.ResolveTimeframe(common.KkexTimeframes, timeframe)
	if !ok {
		return nil, base.NotSupported(e.Name(), "FetchOHLCV timeframe "+timeframe)
	}
	if limit <= 0 {
		limit = 5
	}
	sinceMs := base.SinceMs(since)
	if sinceMs == 0 {
		sinceMs = common.GetTimestamp() - 60*1000
	}
	body, err := e.client.Get(ctx, publicPrefix+"/kline", map[string]interface{}{
		"symbol": market.ID,
		"type":   interval,
		"since":  sinceMs,
		"size":   limit,
	})
	if err != nil {
		return nil, err
	}
	var rows [][]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	ohlcvs := make([]*types.OHLCV, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		bar := &types.OHLCV{}
		if ts := common.ToFloat(row[0]); ts != nil {
			bar.Timestamp = int64(*ts)
		}
		for i, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume} {
			if v := common.ToFloat(row[i+1]); v != nil {
				*dst = *v
			}
		}
		ohlcvs = append(ohlcvs, bar)
	}
	return ohlcvs, nil
}

// FetchBalance 获取余额：info.funds.free / info.funds.freezed
func (e *Exchange) FetchBalance(ctx context.Context) (*types.Balances, error) {
	response, err := e.privatePost(ctx, "userinfo", nil)
	if err != nil {
		return nil, err
	}
	info := common.SafeMap(response, "info")
	funds := common.SafeMap(info, "funds")
	free := common.SafeMap(funds, "free")
	freezed := common.SafeMap(funds, "freezed")

	balances := types.NewBalances()
	balances.Info = info
	for id := range free {
		code := e.SafeCurrencyCode(id)
		balances.Set(code, &types.Balance{
			Free: common.SafeFloat(free, id),
			Used: common.SafeFloat(freezed, id),
		})
	}
	return balances, nil
}

func parseOrderStatus(status string) types.OrderStatus {
	if mapped, ok := orderStatuses[status]; ok {
		return mapped
	}
	return types.OrderStatus(status)
}

// parseOrder 订单：{order_id, create_date, amount, deal_amount, avg_price, price, status, side}
// 接口只有限价单语义，成交金额按均价推算
func (e *Exchange) parseOrder(raw map[string]interface{}, symbol string) *types.Order {
	side := common.SafeStringLower(raw, "side")
	if side == "" {
		side = common.SafeStringLower(raw, "type")
	}
	amount := common.SafeFloat(raw, "amount")
	filled := common.SafeFloat(raw, "deal_amount")
	average := common.SafeFloat(raw, "avg_price", "price_avg")

	order := &types.Order{
		ID:        common.SafeString(raw, "order_id", "id"),
		Symbol:    symbol,
		Type:      types.OrderTypeLimit,
		Side:      types.OrderSide(side),
		Price:     common.SafeFloat(raw, "price"),
		Amount:    amount,
		Filled:    filled,
		Average:   average,
		Status:    parseOrderStatus(common.SafeString(raw, "status")),
		Timestamp: common.SafeIntegerValue(raw, "create_date"),
		Info:      raw,
	}
	if amount != nil && filled != nil {
		remaining := *amount - *filled
		order.Remaining = &remaining
	}
	if average != nil && filled != nil {
		cost := *average * *filled
		order.Cost = &cost
	}
	return order
}

// CreateOrder 创建订单
// 市价买单的数量填在价格字段，方向追加 _market 后缀
func (e *Exchange) CreateOrder(ctx context.Context, symbol string, orderType types.OrderType, side types.OrderSide, amount, price float64, params map[string]interface{}) (*types.Order, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}

	request := types.NewParams()
	request.Set("symbol", market.ID)
	tradeSide := side.Lower()
	if orderType == types.OrderTypeMarket {
		if side == types.OrderSideSell {
			request.Set("amount", common.FloatToString(amount))
		} else {
			request.Set("price", common.FloatToString(amount))
		}
		tradeSide += "_market"
	} else {
		amountStr, err := e.AmountToPrecision(symbol, amount)
		if err != nil {
			return nil, err
		}
		priceStr, err := e.PriceToPrecision(symbol, price)
		if err != nil {
			return nil, err
		}
		request.Set("amount", amountStr)
		request.Set("price", priceStr)
	}
	request.Set("type", tradeSide)
	for k, v := range params {
		request.Set(k, fmt.Sprintf("%v", v))
	}

	response, err := e.privatePost(ctx, "trade", request)
	if err != nil {
		return nil, err
	}

	order := &types.Order{
		ID:        common.SafeString(response, "order_id"),
		Symbol:    symbol,
		Type:      orderType,
		Side:      side,
		Amount:    &amount,
		Status:    types.OrderStatusOpen,
		Timestamp: common.GetTimestamp(),
		Info:      response,
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
	request := types.NewParams()
	request.Set("order_id", id)
	request.Set("symbol", market.ID)
	response, err := e.privatePost(ctx, "cancel_order", request)
	if err != nil {
		return nil, err
	}
	return &types.Order{
		ID:     id,
		Symbol: symbol,
		Status: types.OrderStatusCanceled,
		Info:   response,
	}, nil
}

// FetchOrder 查询订单
func (e *Exchange) FetchOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	if symbol == "" {
		return nil, base.RequiredArgument("FetchOrder", "symbol")
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	request := types.NewParams()
	request.Set("order_id", id)
	request.Set("symbol", market.ID)
	response, err := e.privatePost(ctx, "order_info", request)
	if err != nil {
		return nil, err
	}
	raw := common.SafeMap(response, "order")
	if raw == nil {
		return nil, base.NewAPIError(e.Name(), "", "order not found: "+id, base.ErrOrderNotFound)
	}
	return e.parseOrder(raw, symbol), nil
}

// FetchOpenOrders 查询未成交订单
func (e *Exchange) FetchOpenOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrderHistory(ctx, symbol, limit, "0")
}

// FetchClosedOrders 查询已完成订单
func (e *Exchange) FetchClosedOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return e.fetchOrderHistory(ctx, symbol, limit, "1")
}

func (e *Exchange) fetchOrderHistory(ctx context.Context, symbol string, limit int, status string) ([]*types.Order, error) {
	if symbol == "" {
		return nil, base.RequiredArgument("fetchOrderHistory", "symbol")
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	request := types.NewParams()
	request.Set("symbol", market.ID)
	request.Set("status", status)
	request.SetInt("page_length", int64(limit))

	response, err := e.privatePost(ctx, "order_history", request)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(response, "orders")
	orders := make([]*types.Order, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			orders = append(orders, e.parseOrder(raw, symbol))
		}
	}
	return orders, nil
}

var _ base.Adapter = (*Exchange)(nil)
