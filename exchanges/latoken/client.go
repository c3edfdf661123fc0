package latoken

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
	defaultBaseURL = "https://api.latoken.com"
	apiPrefix      = "/api/v1"
	rateLimitMs    = 1500

	// 公共接口 x-lat-timeframe 请求头，毫秒
	defaultTimeframeMs = 5000
)

// publicGet 公共接口GET请求
func (e *Exchange) publicGet(ctx context.Context, path string, params *types.Params) (json.RawMessage, error) {
	headers := map[string]string{
		"x-lat-timestamp": strconv.FormatInt(common.GetTimestamp(), 10),
		"x-lat-timeframe": strconv.Itoa(defaultTimeframeMs),
	}
	urlPath := apiPrefix + "/" + path
	if params != nil {
		urlPath = params.JoinPath(urlPath)
	}
	body, err := e.client.Do(ctx, "GET", urlPath, headers, "", nil)
	return e.handleResponse(body, err)
}

// privateRequest 私有接口请求
// 时间戳追加到业务参数末尾，签名串为路径加查询串的HMAC-SHA256十六进制摘要，
// 查询串保持参数写入顺序
func (e *Exchange) privateRequest(ctx context.Context, method, path string, params *types.Params) (json.RawMessage, error) {
	if err := e.RequireCredentials(); err != nil {
		return nil, err
	}
	if params == nil {
		params = types.NewParams()
	}
	params.SetInt("timestamp", common.GetTimestamp())

	query := "?" + params.EncodeQuery()
	toSign := apiPrefix + "/" + path + query
	signature := common.SignHMAC256(toSign, e.Secret())

	headers := map[string]string{
		"X-LA-KEY":       e.APIKey(),
		"X-LA-SIGNATURE": signature,
	}

	var reqBody []byte
	contentType := ""
	if method != "GET" {
		reqBody = []byte(params.EncodeQuery())
		contentType = "application/x-www-form-urlencoded"
	}

	body, err := e.client.Do(ctx, method, apiPrefix+"/"+path+query, headers, contentType, reqBody)
	return e.handleResponse(body, err)
}

// handleResponse 检查错误包络：error 字段或 success=false 均视为失败
func (e *Exchange) handleResponse(body []byte, reqErr error) (json.RawMessage, error) {
	if reqErr != nil {
		var httpErr *common.HTTPError
		if !errors.As(reqErr, &httpErr) {
			return nil, reqErr
		}
	}

	var probe map[string]interface{}
	if err := json.Unmarshal(body, &probe); err == nil {
		if msg := common.SafeString(probe, "error"); msg != "" {
			return nil, base.TranslateError(e.Name(), "", msg, nil, nil)
		}
		if success, ok := probe["success"].(bool); ok && !success {
			return nil, base.TranslateError(e.Name(), "", string(body), nil, nil)
		}
	}
	if reqErr != nil {
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
