package bitmax

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
)

const (
	defaultBaseURL = "https://bitmax.io"
	apiPrefix      = "/api/pro/v1"
	// 请求最小间隔，毫秒
	rateLimitMs = 500
)

// errCodes 错误码精确映射
var errCodes = map[string]error{
	"2100":   base.ErrAuthentication,
	"5002":   base.ErrBadSymbol,
	"6010":   base.ErrInsufficientFunds,
	"60060":  base.ErrInvalidOrder,
	"600503": base.ErrInvalidOrder,
}

// publicGet 公共接口GET请求
func (e *Exchange) publicGet(ctx context.Context, path string, params map[string]interface{}) (map[string]interface{}, error) {
	body, err := e.client.Get(ctx, apiPrefix+"/"+path, params)
	return e.handleResponse(body, err)
}

// privateRequest 私有接口请求
// accountScoped为true时路径带账户组和账户类别前缀
// 签名串为 时间戳+"+"+接口名，接口名不含账户类别前缀
func (e *Exchange) privateRequest(ctx context.Context, method, path string, accountScoped bool, params map[string]interface{}, reqBody interface{}) (map[string]interface{}, error) {
	if err := e.RequireCredentials(); err != nil {
		return nil, err
	}

	urlPath := apiPrefix + "/" + path
	if accountScoped {
		group, err := e.accountGroup(ctx)
		if err != nil {
			return nil, err
		}
		category := e.accountCategory()
		urlPath = "/" + group + apiPrefix + "/" + category + "/" + path
	}

	query := ""
	if len(params) > 0 {
		query = "?" + common.BuildQueryString(params)
	}

	// 请求体里的time与签名头必须是同一个时间戳
	timestamp := common.GetTimestamp()
	if m, ok := reqBody.(map[string]interface{}); ok {
		if ts, ok := m["time"].(int64); ok {
			timestamp = ts
		} else {
			m["time"] = timestamp
		}
	}
	auth := strconv.FormatInt(timestamp, 10) + "+" + signPath(path)
	signature := common.SignHMAC256Base64(auth, e.Secret())

	headers := map[string]string{
		"x-auth-key":       e.APIKey(),
		"x-auth-timestamp": strconv.FormatInt(timestamp, 10),
		"x-auth-signature": signature,
	}

	var encoded []byte
	contentType := ""
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		encoded = data
		contentType = "application/json"
	}

	body, err := e.client.Do(ctx, method, urlPath+query, headers, contentType, encoded)
	return e.handleResponse(body, err)
}

// signPath 签名用接口名：去掉路径参数段
func signPath(path string) string {
	if i := strings.Index(path, "/{"); i >= 0 {
		return path[:i]
	}
	return path
}

// handleResponse 解析响应包络 {code, message, data}，code非0时翻译为统一错误
func (e *Exchange) handleResponse(body []byte, reqErr error) (map[string]interface{}, error) {
	if reqErr != nil {
		var httpErr *common.HTTPError
		if !errors.As(reqErr, &httpErr) {
			return nil, reqErr
		}
		// 带响应体的HTTP错误继续走错误码翻译
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		if reqErr != nil {
			return nil, reqErr
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	code := common.SafeString(response, "code")
	if code != "" && code != "0" {
		message := common.SafeString(response, "message", "reason")
		return nil, base.TranslateError(e.Name(), code, message, errCodes, nil)
	}
	if reqErr != nil {
		return nil, reqErr
	}
	return response, nil
}

// accountCategory 当前账户类别，默认cash
func (e *Exchange) accountCategory() string {
	if v := e.GetOptionString("account"); v != "" {
		return strings.ToLower(v)
	}
	return "cash"
}

// accountGroup 账户组编号，首次访问时从账户接口获取并缓存
func (e *Exchange) accountGroup(ctx context.Context) (string, error) {
	if v := e.GetOptionString("account-group"); v != "" {
		return v, nil
	}
	if _, err := e.FetchAccounts(ctx); err != nil {
		return "", err
	}
	if v := e.GetOptionString("account-group"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: account group unavailable: %w", e.Name(), base.ErrExchange)
}
