package xena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

const (
	// 公共行情与私有接口使用不同域名
	defaultPublicBaseURL  = "https://trading.xena.exchange/api"
	defaultPrivateBaseURL = "https://api.xena.exchange"
	// 请求最小间隔，毫秒
	rateLimitMs = 500

	// 私钥为secret的十六进制子串
	secretKeyStart = 14
	secretKeyEnd   = 78
)

// errExact 错误消息精确映射
var errExact = map[string]error{
	"Validation failed": base.ErrBadRequest,
}

// errBroad 错误消息子串映射
var errBroad = map[string]error{
	"address":          base.ErrInvalidAddress,
	"Money not enough": base.ErrInsufficientFunds,
}

// publicGet 公共接口GET请求
func (e *Exchange) publicGet(ctx context.Context, path string, params *types.Params) (json.RawMessage, error) {
	urlPath := "/" + path
	if params != nil {
		urlPath = params.JoinPath(urlPath)
	}
	body, err := e.public.Do(ctx, "GET", urlPath, nil, "", nil)
	return e.handleResponse(body, err)
}

// privateRequest 私有接口请求
// 随机数为毫秒时间戳乘1e6，签名串为 "AUTH"+随机数，
// 用secret第14至78位十六进制子串作为P-256私钥做ECDSA签名
func (e *Exchange) privateRequest(ctx context.Context, method, path string, params *types.Params, reqBody interface{}) (json.RawMessage, error) {
	if err := e.RequireCredentials(); err != nil {
		return nil, err
	}
	secret := e.Secret()
	if len(secret) < secretKeyEnd {
		return nil, fmt.Errorf("%s: secret too short for signing: %w", e.Name(), base.ErrAuthenticationRequired)
	}

	nonce := common.GetTimestamp() * 1_000_000
	payload := "AUTH" + strconv.FormatInt(nonce, 10)
	signature, err := common.SignECDSA(payload, secret[secretKeyStart:secretKeyEnd])
	if err != nil {
		return nil, fmt.Errorf("%s: sign request: %w", e.Name(), err)
	}

	headers := map[string]string{
		"X-AUTH-API-KEY":       e.APIKey(),
		"X-AUTH-API-PAYLOAD":   payload,
		"X-AUTH-API-SIGNATURE": signature,
		"X-AUTH-API-NONCE":     strconv.FormatInt(nonce, 10),
	}

	urlPath := "/" + path
	if method == "GET" && params != nil {
		urlPath = params.JoinPath(urlPath)
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

	body, err := e.private.Do(ctx, method, urlPath, headers, contentType, encoded)
	return e.handleResponse(body, err)
}

// handleResponse 检查错误包络 {"error": "...", "fields": [...]}
func (e *Exchange) handleResponse(body []byte, reqErr error) (json.RawMessage, error) {
	if reqErr != nil {
		var httpErr *common.HTTPError
		if !errors.As(reqErr, &httpErr) {
			return nil, reqErr
		}
		var probe map[string]interface{}
		if err := json.Unmarshal(body, &probe); err == nil {
			if msg := common.SafeString(probe, "error"); msg != "" {
				return nil, base.TranslateError(e.Name(), "", msg, errExact, errBroad)
			}
		}
		return nil, reqErr
	}
	return body, nil
}

func decodeObject(body json.RawMessage) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return m, nil
}

func decodeList(body json.RawMessage) ([]interface{}, error) {
	var rows []interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}
