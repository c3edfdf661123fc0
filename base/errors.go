package base

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExchange 交易所返回的通用错误
	ErrExchange = errors.New("exchange error")
	// ErrAuthentication 认证失败
	ErrAuthentication = errors.New("authentication error")
	// ErrBadRequest 请求参数错误
	ErrBadRequest = errors.New("bad request")
	// ErrBadSymbol 无效的交易对
	ErrBadSymbol = errors.New("bad symbol")
	// ErrInsufficientFunds 余额不足
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidOrder 无效的订单
	ErrInvalidOrder = errors.New("invalid order")
	// ErrInvalidAddress 无效的地址
	ErrInvalidAddress = errors.New("invalid address")
	// ErrOrderNotFound 订单未找到
	ErrOrderNotFound = errors.New("order not found")
	// ErrMarketNotFound 市场未找到
	ErrMarketNotFound = errors.New("market not found")
	// ErrArgumentsRequired 缺少必要参数
	ErrArgumentsRequired = errors.New("arguments required")
	// ErrAuthenticationRequired 需要API密钥
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrNotSupported 交易所不支持该操作
	ErrNotSupported = errors.New("not supported")
	// ErrExchangeNotSupported 不支持的交易所
	ErrExchangeNotSupported = errors.New("exchange not supported")
	// ErrRateLimitExceeded 请求频率超限
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// APIError 交易所API错误，保留原始错误码和消息
// Unwrap 返回统一错误分类，可用 errors.Is 判断
type APIError struct {
	Exchange string // 交易所名称
	Code     string // 原始错误码
	Message  string // 原始错误消息
	Kind     error  // 统一错误分类
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %s", e.Exchange, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Exchange, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrExchange
}

// NewAPIError 创建API错误
func NewAPIError(exchange, code, message string, kind error) *APIError {
	return &APIError{Exchange: exchange, Code: code, Message: message, Kind: kind}
}

// TranslateError 按交易所错误映射表翻译错误
// 先按错误码和消息精确匹配，再对消息做子串匹配，都未命中时归类为 ErrExchange
func TranslateError(exchange, code, message string, exact, broad map[string]error) *APIError {
	if kind, ok := exact[code]; ok && code != "" {
		return NewAPIError(exchange, code, message, kind)
	}
	if kind, ok := exact[message]; ok && message != "" {
		return NewAPIError(exchange, code, message, kind)
	}
	for key, kind := range broad {
		if strings.Contains(message, key) {
			return NewAPIError(exchange, code, message, kind)
		}
	}
	return NewAPIError(exchange, code, message, ErrExchange)
}

// NotSupported 生成操作不支持错误
func NotSupported(exchange, method string) error {
	return fmt.Errorf("%s %s: %w", exchange, method, ErrNotSupported)
}

// RequiredArgument 生成缺少参数错误
func RequiredArgument(method, argument string) error {
	return fmt.Errorf("%s requires a %s argument: %w", method, argument, ErrArgumentsRequired)
}
