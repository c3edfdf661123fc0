package base

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

// Adapter 交易所适配器接口
// 所有适配器把交易所的原始接口投影到同一组操作上，
// 不支持的操作返回 ErrNotSupported
type Adapter interface {
	// 基本信息
	Name() string                                                              // 交易所名称
	LoadMarkets(ctx context.Context, reload bool) (map[string]*types.Market, error) // 加载并缓存市场列表
	FetchMarkets(ctx context.Context) ([]*types.Market, error)                 // 获取市场列表
	FetchCurrencies(ctx context.Context) (map[string]*types.Currency, error)   // 获取币种列表
	FetchAccounts(ctx context.Context) ([]*types.Account, error)               // 获取账户列表

	// 行情数据
	FetchTicker(ctx context.Context, symbol string) (*types.Ticker, error)                                              // 获取行情
	FetchTickers(ctx context.Context, symbols ...string) (map[string]*types.Ticker, error)                              // 批量获取行情
	FetchOrderBook(ctx context.Context, symbol string, limit int) (*types.OrderBook, error)                             // 获取深度
	FetchTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error)                 // 获取公开成交
	FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]*types.OHLCV, error)       // 获取K线

	// 账户信息
	FetchBalance(ctx context.Context) (*types.Balances, error) // 获取余额

	// 订单操作
	CreateOrder(ctx context.Context, symbol string, orderType types.OrderType, side types.OrderSide, amount, price float64, params map[string]interface{}) (*types.Order, error) // 创建订单
	CancelOrder(ctx context.Context, id, symbol string) (*types.Order, error)                                                                                                    // 取消订单
	CancelAllOrders(ctx context.Context, symbol string) error                                                                                                                    // 取消全部订单
	FetchOrder(ctx context.Context, id, symbol string) (*types.Order, error)                                                                                                     // 查询订单
	FetchOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error)                                                                          // 查询订单列表
	FetchOpenOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error)                                                                      // 查询未成交订单
	FetchClosedOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error)                                                                    // 查询已完成订单
	FetchMyTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error)                                                                        // 查询我的成交

	// 资金操作
	FetchDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error)                        // 获取充值地址
	CreateDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error)                       // 创建充值地址
	FetchDeposits(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error)   // 获取充值记录
	FetchWithdrawals(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error) // 获取提现记录
	Withdraw(ctx context.Context, code string, amount float64, address, tag string) (*types.Transaction, error) // 提现
	FetchLedger(ctx context.Context, code string, since time.Time, limit int) ([]*types.LedgerEntry, error)     // 获取账本流水
}

// commonCurrencyAliases 币种别名，交易所私有代码映射到统一代码
var commonCurrencyAliases = map[string]string{
	"XBT": "BTC",
	"BCC": "BCH",
	"DRK": "DASH",
}

// BaseExchange 适配器基础实现
// 持有市场/币种/账户缓存，并为所有接口操作提供默认的"不支持"实现，
// 具体适配器内嵌后只需覆盖自己支持的操作
type BaseExchange struct {
	name     string
	apiKey   string
	secret   string
	sandbox  bool
	proxyURL string

	mu           sync.RWMutex
	markets      map[string]*types.Market
	marketsByID  map[string]*types.Market
	currencies   map[string]*types.Currency
	currencyByID map[string]*types.Currency
	accounts     []*types.Account
	options      map[string]interface{}
}

// NewBaseExchange 创建基础适配器
func NewBaseExchange(name string) *BaseExchange {
	return &BaseExchange{
		name:    name,
		options: make(map[string]interface{}),
	}
}

// Name 返回交易所名称
func (e *BaseExchange) Name() string {
	return e.name
}

// SetCredentials 设置API密钥
func (e *BaseExchange) SetCredentials(apiKey, secret string) {
	e.apiKey = apiKey
	e.secret = secret
}

// APIKey 返回API Key
func (e *BaseExchange) APIKey() string {
	return e.apiKey
}

// Secret 返回API Secret
func (e *BaseExchange) Secret() string {
	return e.secret
}

// RequireCredentials 校验密钥已配置
func (e *BaseExchange) RequireCredentials() error {
	if e.apiKey == "" || e.secret == "" {
		return ErrAuthenticationRequired
	}
	return nil
}

// SetOption 设置选项
func (e *BaseExchange) SetOption(key string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.options[key] = value
}

// GetOption 获取选项
func (e *BaseExchange) GetOption(key string) interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.options[key]
}

// GetOptionString 获取字符串选项
func (e *BaseExchange) GetOptionString(key string) string {
	if s, ok := e.GetOption(key).(string); ok {
		return s
	}
	return ""
}

// SetSandbox 设置模拟盘模式
func (e *BaseExchange) SetSandbox(sandbox bool) {
	e.sandbox = sandbox
}

// IsSandbox 是否模拟盘模式
func (e *BaseExchange) IsSandbox() bool {
	return e.sandbox
}

// SetProxy 设置代理
func (e *BaseExchange) SetProxy(proxyURL string) {
	e.proxyURL = proxyURL
}

// GetProxy 获取代理URL
func (e *BaseExchange) GetProxy() string {
	return e.proxyURL
}

// SetMarkets 写入市场缓存，同时建立按原始ID的索引
func (e *BaseExchange) SetMarkets(markets []*types.Market) map[string]*types.Market {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markets = make(map[string]*types.Market, len(markets))
	e.marketsByID = make(map[string]*types.Market, len(markets))
	for _, market := range markets {
		e.markets[market.Symbol] = market
		e.marketsByID[market.ID] = market
	}
	return e.markets
}

// Markets 返回市场缓存，未加载时为nil
func (e *BaseExchange) Markets() map[string]*types.Market {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.markets
}

// GetMarket 按统一交易对查找市场
func (e *BaseExchange) GetMarket(symbol string) (*types.Market, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	market, ok := e.markets[symbol]
	if !ok {
		return nil, ErrMarketNotFound
	}
	return market, nil
}

// MarketByID 按交易所原始ID查找市场
func (e *BaseExchange) MarketByID(id string) (*types.Market, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	market, ok := e.marketsByID[id]
	return market, ok
}

// LoadMarketsWith 加载市场缓存
// 已加载且reload为false时直接返回缓存，否则调用fetch拉取并重建缓存
func (e *BaseExchange) LoadMarketsWith(ctx context.Context, reload bool, fetch func(context.Context) ([]*types.Market, error)) (map[string]*types.Market, error) {
	if !reload {
		if markets := e.Markets(); markets != nil {
			return markets, nil
		}
	}
	markets, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return e.SetMarkets(markets), nil
}

// SetCurrencies 写入币种缓存
func (e *BaseExchange) SetCurrencies(currencies map[string]*types.Currency) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currencies = currencies
	e.currencyByID = make(map[string]*types.Currency, len(currencies))
	for _, currency := range currencies {
		e.currencyByID[currency.ID] = currency
	}
}

// GetCurrency 按统一代码查找币种
func (e *BaseExchange) GetCurrency(code string) (*types.Currency, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	currency, ok := e.currencies[code]
	return currency, ok
}

// SafeCurrencyCode 把交易所原始币种ID转换为统一代码
// 优先使用币种缓存，其次使用别名表，最后大写透传
func (e *BaseExchange) SafeCurrencyCode(id string) string {
	if id == "" {
		return ""
	}
	e.mu.RLock()
	currency, ok := e.currencyByID[id]
	e.mu.RUnlock()
	if ok {
		return currency.Code
	}
	upper := strings.ToUpper(id)
	if code, ok := commonCurrencyAliases[upper]; ok {
		return code
	}
	return upper
}

// SafeSymbol 把交易所原始市场ID转换为统一交易对
// 优先使用市场缓存；缓存未命中时按分隔符拆分并规范化币种；
// 无法拆分时原样返回，避免数据丢失
func (e *BaseExchange) SafeSymbol(id string) string {
	if id == "" {
		return ""
	}
	if market, ok := e.MarketByID(id); ok {
		return market.Symbol
	}
	if base, quote, ok := common.SplitMarketID(id); ok {
		return common.NormalizeSymbol(e.SafeCurrencyCode(base), e.SafeCurrencyCode(quote))
	}
	return id
}

// SetAccounts 写入账户缓存
func (e *BaseExchange) SetAccounts(accounts []*types.Account) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts = accounts
}

// Accounts 返回账户缓存
func (e *BaseExchange) Accounts() []*types.Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.accounts
}

// LoadAccountsWith 加载账户缓存，已加载时直接返回
func (e *BaseExchange) LoadAccountsWith(ctx context.Context, fetch func(context.Context) ([]*types.Account, error)) ([]*types.Account, error) {
	if accounts := e.Accounts(); accounts != nil {
		return accounts, nil
	}
	accounts, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	e.SetAccounts(accounts)
	return accounts, nil
}

// AmountToPrecision 数量按市场精度截断
func (e *BaseExchange) AmountToPrecision(symbol string, amount float64) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	return common.DecimalTruncate(amount, market.Precision.Amount), nil
}

// PriceToPrecision 价格按市场精度四舍五入
func (e *BaseExchange) PriceToPrecision(symbol string, price float64) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	return common.DecimalToPrecision(price, market.Precision.Price), nil
}

// CalculateFee 计算订单手续费
// 费率取市场的taker或maker费率，成本按价格精度量化，币种为计价货币
func (e *BaseExchange) CalculateFee(symbol string, takerOrMaker types.TakerOrMaker, amount, price float64) (*types.Fee, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	rate := market.Taker
	if takerOrMaker == types.Maker {
		rate = market.Maker
	}
	cost := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(amount)).
		Mul(decimal.NewFromFloat(rate)).
		Round(int32(market.Precision.Price))
	feeCost, _ := cost.Float64()
	return &types.Fee{Cost: &feeCost, Currency: market.Quote, Rate: &rate}, nil
}

// CurrencyToPrecision 金额按币种精度截断
func (e *BaseExchange) CurrencyToPrecision(code string, amount float64) string {
	if currency, ok := e.GetCurrency(code); ok && currency.Precision > 0 {
		return common.DecimalTruncate(amount, currency.Precision)
	}
	return common.FloatToString(amount)
}

// SinceMs 把起始时间转换为毫秒时间戳，零值时间返回0
func SinceMs(since time.Time) int64 {
	if since.IsZero() {
		return 0
	}
	return since.UnixMilli()
}

// 以下为全部接口操作的默认实现，统一返回不支持错误

func (e *BaseExchange) LoadMarkets(ctx context.Context, reload bool) (map[string]*types.Market, error) {
	return nil, NotSupported(e.name, "LoadMarkets")
}

func (e *BaseExchange) FetchMarkets(ctx context.Context) ([]*types.Market, error) {
	return nil, NotSupported(e.name, "FetchMarkets")
}

func (e *BaseExchange) FetchCurrencies(ctx context.Context) (map[string]*types.Currency, error) {
	return nil, NotSupported(e.name, "FetchCurrencies")
}

func (e *BaseExchange) FetchAccounts(ctx context.Context) ([]*types.Account, error) {
	return nil, NotSupported(e.name, "FetchAccounts")
}

func (e *BaseExchange) FetchTicker(ctx context.Context, symbol string) (*types.Ticker, error) {
	return nil, NotSupported(e.name, "FetchTicker")
}

func (e *BaseExchange) FetchTickers(ctx context.Context, symbols ...string) (map[string]*types.Ticker, error) {
	return nil, NotSupported(e.name, "FetchTickers")
}

func (e *BaseExchange) FetchOrderBook(ctx context.Context, symbol string, limit int) (*types.OrderBook, error) {
	return nil, NotSupported(e.name, "FetchOrderBook")
}

func (e *BaseExchange) FetchTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	return nil, NotSupported(e.name, "FetchTrades")
}

func (e *BaseExchange) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]*types.OHLCV, error) {
	return nil, NotSupported(e.name, "FetchOHLCV")
}

func (e *BaseExchange) FetchBalance(ctx context.Context) (*types.Balances, error) {
	return nil, NotSupported(e.name, "FetchBalance")
}

func (e *BaseExchange) CreateOrder(ctx context.Context, symbol string, orderType types.OrderType, side types.OrderSide, amount, price float64, params map[string]interface{}) (*types.Order, error) {
	return nil, NotSupported(e.name, "CreateOrder")
}

func (e *BaseExchange) CancelOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	return nil, NotSupported(e.name, "CancelOrder")
}

func (e *BaseExchange) CancelAllOrders(ctx context.Context, symbol string) error {
	return NotSupported(e.name, "CancelAllOrders")
}

func (e *BaseExchange) FetchOrder(ctx context.Context, id, symbol string) (*types.Order, error) {
	return nil, NotSupported(e.name, "FetchOrder")
}

func (e *BaseExchange) FetchOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return nil, NotSupported(e.name, "FetchOrders")
}

func (e *BaseExchange) FetchOpenOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return nil, NotSupported(e.name, "FetchOpenOrders")
}

func (e *BaseExchange) FetchClosedOrders(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Order, error) {
	return nil, NotSupported(e.name, "FetchClosedOrders")
}

func (e *BaseExchange) FetchMyTrades(ctx context.Context, symbol string, since time.Time, limit int) ([]*types.Trade, error) {
	return nil, NotSupported(e.name, "FetchMyTrades")
}

func (e *BaseExchange) FetchDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error) {
	return nil, NotSupported(e.name, "FetchDepositAddress")
}

func (e *BaseExchange) CreateDepositAddress(ctx context.Context, code string) (*types.DepositAddress, error) {
	return nil, NotSupported(e.name, "CreateDepositAddress")
}

func (e *BaseExchange) FetchDeposits(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error) {
	return nil, NotSupported(e.name, "FetchDeposits")
}

func (e *BaseExchange) FetchWithdrawals(ctx context.Context, code string, since time.Time, limit int) ([]*types.Transaction, error) {
	return nil, NotSupported(e.name, "FetchWithdrawals")
}

func (e *BaseExchange) Withdraw(ctx context.Context, code string, amount float64, address, tag string) (*types.Transaction, error) {
	return nil, NotSupported(e.name, "Withdraw")
}

func (e *BaseExchange) FetchLedger(ctx context.Context, code string, since time.Time, limit int) ([]*types.LedgerEntry, error) {
	return nil, NotSupported(e.name, "FetchLedger")
}
