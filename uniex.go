// Package uniex 提供统一的交易所接入层
// 通过注册表按名称创建适配器，所有适配器实现同一套操作接口
package uniex

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/config"
	"github.com/uniex/uniex/exchanges/bitmax"
	"github.com/uniex/uniex/exchanges/kkex"
	"github.com/uniex/uniex/exchanges/latoken"
	"github.com/uniex/uniex/exchanges/xena"
	"github.com/uniex/uniex/logger"
)

// 交易所名称常量
const (
	ExchangeBitmax  = "bitmax"  // BitMax (AscendEX) 交易所
	ExchangeKkex    = "kkex"    // KKEX 交易所
	ExchangeLatoken = "latoken" // LATOKEN 交易所
	ExchangeXena    = "xena"    // Xena Exchange 交易所
)

// Exchange 完整的交易所适配器：统一操作接口加实例配置
type Exchange interface {
	base.Adapter

	SetCredentials(apiKey, secret string)
	SetOption(key string, value interface{})
	SetSandbox(sandbox bool)
	SetProxy(proxyURL string) error
	SetDebug(debug bool)
	SetBaseURL(baseURL string)
	SetLogger(log *logrus.Entry)
}

// ExchangeFactory 交易所工厂函数
type ExchangeFactory func() Exchange

// Registry 交易所注册表
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ExchangeFactory
}

var globalRegistry = &Registry{
	factories: make(map[string]ExchangeFactory),
}

func init() {
	Register(ExchangeBitmax, func() Exchange { return bitmax.New() })
	Register(ExchangeKkex, func() Exchange { return kkex.New() })
	Register(ExchangeLatoken, func() Exchange { return latoken.New() })
	Register(ExchangeXena, func() Exchange { return xena.New() })
}

// Register 注册交易所
func Register(name string, factory ExchangeFactory) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.factories[name] = factory
}

// ExchangeOptions 交易所配置选项
type ExchangeOptions struct {
	APIKey    string
	SecretKey string
	Sandbox   bool
	Proxy     string
	BaseURL   string
	Debug     bool
	Logger    *logrus.Entry
	Options   map[string]interface{}
}

// Option 配置选项函数类型
type Option func(*ExchangeOptions)

// WithAPIKey 设置 API Key
func WithAPIKey(apiKey string) Option {
	return func(opts *ExchangeOptions) {
		opts.APIKey = apiKey
	}
}

// WithSecretKey 设置 Secret Key
func WithSecretKey(secretKey string) Option {
	return func(opts *ExchangeOptions) {
		opts.SecretKey = secretKey
	}
}

// WithSandbox 设置沙盒模式
func WithSandbox(sandbox bool) Option {
	return func(opts *ExchangeOptions) {
		opts.Sandbox = sandbox
	}
}

// WithProxy 设置代理地址
func WithProxy(proxy string) Option {
	return func(opts *ExchangeOptions) {
		opts.Proxy = proxy
	}
}

// WithBaseURL 设置基础地址
func WithBaseURL(baseURL string) Option {
	return func(opts *ExchangeOptions) {
		opts.BaseURL = baseURL
	}
}

// WithDebug 设置调试模式
func WithDebug(debug bool) Option {
	return func(opts *ExchangeOptions) {
		opts.Debug = debug
	}
}

// WithLogger 设置日志
func WithLogger(log *logrus.Entry) Option {
	return func(opts *ExchangeOptions) {
		opts.Logger = log
	}
}

// WithOption 设置自定义选项（如 xena 的 accountId、bitmax 的 account-group）
func WithOption(key string, value interface{}) Option {
	return func(opts *ExchangeOptions) {
		if opts.Options == nil {
			opts.Options = make(map[string]interface{})
		}
		opts.Options[key] = value
	}
}

// NewExchange 创建交易所实例（Functional Options Pattern）
func NewExchange(name string, opts ...Option) (Exchange, error) {
	options := &ExchangeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	globalRegistry.mu.RLock()
	factory, ok := globalRegistry.factories[name]
	globalRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, base.ErrExchangeNotSupported)
	}

	ex := factory()
	if options.APIKey != "" || options.SecretKey != "" {
		ex.SetCredentials(options.APIKey, options.SecretKey)
	}
	if options.Sandbox {
		ex.SetSandbox(true)
	}
	if options.BaseURL != "" {
		ex.SetBaseURL(options.BaseURL)
	}
	if options.Proxy != "" {
		if err := ex.SetProxy(options.Proxy); err != nil {
			return nil, err
		}
	}
	if options.Debug {
		ex.SetDebug(true)
	}
	log := options.Logger
	if log == nil {
		log = logger.GetLogger().WithComponent(name)
	}
	ex.SetLogger(log)
	for k, v := range options.Options {
		ex.SetOption(k, v)
	}
	return ex, nil
}

// NewExchangeFromConfig 按配置文件的交易所配置块创建实例
func NewExchangeFromConfig(name string, cfg config.ExchangeConfig) (Exchange, error) {
	opts := []Option{
		WithAPIKey(cfg.APIKey),
		WithSecretKey(cfg.Secret),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Proxy != "" {
		opts = append(opts, WithProxy(cfg.Proxy))
	}
	if cfg.Sandbox {
		opts = append(opts, WithSandbox(true))
	}
	if cfg.Debug {
		opts = append(opts, WithDebug(true))
	}
	for k, v := range cfg.Options {
		opts = append(opts, WithOption(k, v))
	}
	return NewExchange(name, opts...)
}

// GetSupportedExchanges 获取支持的交易所列表
func GetSupportedExchanges() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	exchanges := make([]string, 0, len(globalRegistry.factories))
	for name := range globalRegistry.factories {
		exchanges = append(exchanges, name)
	}
	return exchanges
}

// IsExchangeSupported 检查交易所是否支持
func IsExchangeSupported(name string) bool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	_, ok := globalRegistry.factories[name]
	return ok
}
