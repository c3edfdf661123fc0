// Package xena 实现 Xena Exchange 接口适配
package xena

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// Exchange Xena适配器
// 公共行情与私有接口分别走各自的域名
type Exchange struct {
	*base.BaseExchange
	public  *common.HTTPClient
	private *common.HTTPClient
}

// New 创建Xena适配器
func New() *Exchange {
	ex := &Exchange{
		BaseExchange: base.NewBaseExchange("xena"),
		public:       common.NewHTTPClient(defaultPublicBaseURL),
		private:      common.NewHTTPClient(defaultPrivateBaseURL),
	}
	ex.public.SetRateLimit(rateLimitMs)
	ex.private.SetRateLimit(rateLimitMs)
	return ex
}

// SetProxy 设置代理
func (e *Exchange) SetProxy(proxyURL string) error {
	e.BaseExchange.SetProxy(proxyURL)
	if err := e.public.SetProxy(proxyURL); err != nil {
		return err
	}
	return e.private.SetProxy(proxyURL)
}

// SetDebug 设置调试模式
func (e *Exchange) SetDebug(debug bool) {
	e.public.SetDebug(debug)
	e.private.SetDebug(debug)
}

// SetBaseURL 同时设置公共与私有基础地址
func (e *Exchange) SetBaseURL(baseURL string) {
	e.public.SetBaseURL(baseURL)
	e.private.SetBaseURL(baseURL)
}

// SetLogger 设置日志
func (e *Exchange) SetLogger(log *logrus.Entry) {
	e.public.SetLogger(log)
	e.private.SetLogger(log)
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
	body, err := e.publicGet(ctx, "common/instruments", nil)
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
		if market := e.parseMarket(raw); market != nil {
			markets = append(markets, market)
		}
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表，响应为以币种ID为键的对象
func (e *Exchange) FetchCurrencies(ctx context.Context) (map[string]*types.Currency, error) {
	body, err := e.publicGet(ctx, "common/currencies", nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	currencies := make(map[string]*types.Currency, len(raw))
	for id, row := range raw {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		currency := e.parseCurrency(id, entry)
		currencies[currency.Code] = currency
	}
	return currencies, nil
}

// FetchAccounts 获取交易账户列表
func (e *Exchange) FetchAccounts(ctx context.Context) ([]*types.Account, error) {
	body, err := e.privateRequest(ctx, http.MethodGet, "trading/accounts", nil, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	rows := common.SafeSlice(raw, "accounts")
	accounts := make([]*types.Account, 0, len(rows))
	for _, row := range rows {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		accounts = append(accounts, &types.Account{
			ID:       common.SafeString(entry, "id"),
			Type:     common.SafeStringLower(entry, "kind"),
			Currency: e.SafeCurrencyCode(common.SafeString(entry, "currency")),
			Info:     entry,
		})
	}
	e.SetAccounts(accounts)
	return accounts, nil
}

// accountID 确定请求使用的账户编号
// 优先取 accountId 选项，否则按账户类型（默认spot）在账户列表中查找，
// 匹配到多个账户时要求显式指定 accountId
func (e *Exchange) accountID(ctx context.Context) (string, error) {
	if v := e.GetOptionString("accountId"); v != "" {
		return v, nil
	}
	accounts, err := e.LoadAccountsWith(ctx, e.FetchAccounts)
	if err != nil {
		return "", err
	}

	accountType := e.GetOptionString("defaultType")
	if accountType == "" {
		accountType = "spot"
	}
	var matched []*types.Account
	for _, account := range accounts {
		if account.Type == accountType {
			matched = append(matched, account)
		}
	}
	if len(matched) == 0 {
		return "", fmt.Errorf("%s: no account with type %q, set the accountId option: %w", e.Name(), accountType, base.ErrExchange)
	}
	if len(matched) > 1 {
		return "", fmt.Errorf("%s: more than one account with type %q, set the accountId option: %w", e.Name(), accountType, base.ErrExchange)
	}
	return matched[0].ID, nil
}

// FetchBalance 获取余额：balances 数组带 available/onHold/settled/equity
func (e *Exchange) FetchBalance(ctx context.Context) (*types.Balances, error) {
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "trading/accounts/"+accountID+"/balance", nil, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	balances := types.NewBalances()
	balances.Info = raw
	for _, row := range common.SafeSlice(raw, "balances") {
		entry := common.AsMap(row)
		if entry == nil {
			continue
		}
		code := e.SafeCurrencyCode(common.SafeString(entry, "currency"))
		balances.Set(code, &types.Balance{
			Free: common.SafeFloat(entry, "available"),
			Used: common.SafeFloat(entry, "onHold"),
		})
	}
	return balances, nil
}

// FetchMyTrades 查询我的成交
func (e *Exchange) FetchMyTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return nil, err
		}
		params.Set("symbol", market.ID)
	}
	if ms := base.SinceMs(since); ms > 0 {
		params.SetInt("from", ms*1_000_000)
	}
	if limit > 0 {
		params.SetInt("limit", int64(limit))
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "trading/accounts/"+accountID+"/trade-history", params, nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	trades := make([]*types.Trade, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			trades = append(trades, e.parseTrade(raw))
		}
	}
	return trades, nil
}

// FetchOHLCV 获取K线，蜡烛数组在响应的 268 键下
func (e *Exchange) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]*types.OHLCV, error) {
	interval, ok := common.ResolveTimeframe(common.XenaTimeframes, timeframe)
	if !ok {
		return nil, base.NotSupported(e.Name(), "FetchOHLCV timeframe "+timeframe)
	}
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	if ms := base.SinceMs(since); ms > 0 {
		params.SetInt("from", ms*1_000_000)
	}
	body, err := e.publicGet(ctx, "market-data/candles/"+market.ID+"/"+interval, params)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	rows := common.SafeSlice(raw, "268")
	candles := make([]*types.OHLCV, 0, len(rows))
	for _, row := range rows {
		if entry := common.AsMap(row); entry != nil {
			candles = append(candles, parseOHLCV(entry))
		}
	}
	if limit > 0 && len(candles) > limit {
		candles = candles[:limit]
	}
	return candles, nil
}

// FetchDepositAddress 获取充值地址
func (e *Exchange) FetchDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error) {
	return e.depositAddress(ctx, http.MethodGet, code)
}

// CreateDepositAddress 申请新的充值地址
func (e *Exchange) CreateDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error) {
	return e.depositAddress(ctx, http.MethodPost, code)
}

// depositAddress 充值地址接口，GET查询、POST申请
func (e *Exchange) depositAddress(ctx context.Context, method, code string) (*types.DepositAddress, error) {
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	path := "transfers/accounts/" + accountID + "/deposit-address/" + e.currencyID(code)
	body, err := e.privateRequest(ctx, method, path, nil, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	address := common.SafeString(raw, "address")
	if address == "" {
		return nil, base.NewAPIError(e.Name(), "", "empty deposit address for "+code, base.ErrInvalidAddress)
	}
	return &types.DepositAddress{
		Currency: code,
		Address:  address,
		Info:     raw,
	}, nil
}

// FetchDeposits 查询充值记录
func (e *Exchange) FetchDeposits(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error) {
	return e.fetchTransactionsByType(ctx, "FetchDeposits", "deposits", code, since, limit)
}

// FetchWithdrawals 查询提现记录
func (e *Exchange) FetchWithdrawals(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error) {
	return e.fetchTransactionsByType(ctx, "FetchWithdrawals", "withdrawals", code, since, limit)
}

// fetchTransactionsByType 充提记录查询，响应键名与记录类型一致
func (e *Exchange) fetchTransactionsByType(ctx context.Context, method, txType, code string, since time.Time, limit int) ([]*types.Transaction, error) {
	if code == "" {
		return nil, base.RequiredArgument(method, "code")
	}
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	params.Set("currency", e.currencyID(code))
	if ms := base.SinceMs(since); ms > 0 {
		params.SetInt("since", ms/1000)
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "transfers/accounts/"+accountID+"/"+txType, params, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	rows := common.SafeSlice(raw, txType)
	transactions := make([]*types.Transaction, 0, len(rows))
	for _, row := range rows {
		if entry := common.AsMap(row); entry != nil {
			transactions = append(transactions, e.parseTransaction(entry, code))
		}
	}
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// Withdraw 发起提现，外部ID为去掉连字符的UUID
func (e *Exchange) Withdraw(ctx context.Context, code string, amount float64, address, tag string) (*types.Transaction, error) {
	if address == "" {
		return nil, base.RequiredArgument("Withdraw", "address")
	}
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	request := map[string]interface{}{
		"currency":  e.currencyID(code),
		"accountId": accountID,
		"amount":    e.CurrencyToPrecision(code, amount),
		"address":   address,
		"id":        common.UUID32(),
	}
	body, err := e.privateRequest(ctx, http.MethodPost, "transfers/accounts/"+accountID+"/withdrawals", nil, request)
	if err != nil {
		return nil, err
	}
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	tx := e.parseTransaction(raw, code)
	if tx.Amount == nil {
		tx.Amount = &amount
	}
	if tx.Address == "" {
		tx.Address = address
		tx.AddressTo = address
	}
	return tx, nil
}

// FetchLedger 查询账本流水
func (e *Exchange) FetchLedger(ctx context.Context, code string, since time.Time, limit int) ([]*types.LedgerEntry, error) {
	accountID, err := e.accountID(ctx)
	if err != nil {
		return nil, err
	}
	params := types.NewParams()
	if code != "" {
		params.Set("currency", e.currencyID(code))
	}
	if ms := base.SinceMs(since); ms > 0 {
		params.SetInt("from", ms*1_000_000)
	}
	if limit > 0 {
		params.SetInt("limit", int64(limit))
	}
	body, err := e.privateRequest(ctx, http.MethodGet, "transfers/accounts/"+accountID+"/balance-history", params, nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	entries := make([]*types.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		if raw := common.AsMap(row); raw != nil {
			entries = append(entries, e.parseLedgerEntry(raw, code))
		}
	}
	return entries, nil
}

// currencyID 统一币种代码转交易所原始ID
func (e *Exchange) currencyID(code string) string {
	if currency, ok := e.GetCurrency(code); ok {
		return currency.ID
	}
	return code
}

var _ base.Adapter = (*Exchange)(nil)
