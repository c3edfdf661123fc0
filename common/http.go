package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPError 非2xx响应错误，保留响应体供上层翻译为具体错误
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, string(e.Body))
}

// HTTPClient HTTP客户端
type HTTPClient struct {
	client  *http.Client
	baseURL string
	headers map[string]string
	proxy   string
	limiter *rate.Limiter
	log     *logrus.Entry
	debug   bool
}

// NewHTTPClient 创建HTTP客户端
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		headers: make(map[string]string),
	}
}

// SetProxy 设置代理
func (c *HTTPClient) SetProxy(proxyURL string) error {
	if proxyURL == "" {
		c.client.Transport = nil
		c.proxy = ""
		return nil
	}

	proxy, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}

	transport := &http.Transport{
		Proxy: http.ProxyURL(proxy),
	}

	if c.client.Transport != nil {
		// 保留现有的Transport设置
		if existingTransport, ok := c.client.Transport.(*http.Transport); ok {
			transport.TLSClientConfig = existingTransport.TLSClientConfig
		}
	}

	c.client.Transport = transport
	c.proxy = proxyURL
	return nil
}

// GetProxy 获取当前代理设置
func (c *HTTPClient) GetProxy() string {
	return c.proxy
}

// SetBaseURL 设置基础地址
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetHeader 设置请求头
func (c *HTTPClient) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetTimeout 设置超时时间
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetDebug 设置是否启用调试模式
func (c *HTTPClient) SetDebug(debug bool) {
	c.debug = debug
}

// SetLogger 设置调试日志输出
func (c *HTTPClient) SetLogger(log *logrus.Entry) {
	c.log = log
}

// SetRateLimit 设置请求最小间隔（毫秒），0表示不限速
func (c *HTTPClient) SetRateLimit(intervalMs int) {
	if intervalMs <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Duration(intervalMs)*time.Millisecond), 1)
}

// Get 发送GET请求
func (c *HTTPClient) Get(ctx context.Context, path string, params map[string]interface{}) ([]byte, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil)
}

// Post 发送POST请求
func (c *HTTPClient) Post(ctx context.Context, path string, data interface{}) ([]byte, error) {
	return c.Request(ctx, http.MethodPost, path, nil, data)
}

// Request 发送HTTP请求，请求体按JSON编码
func (c *HTTPClient) Request(ctx context.Context, method, path string, params map[string]interface{}, body interface{}) ([]byte, error) {
	// 构建查询参数 - 使用 BuildQueryString 确保与签名时一致（排序和URL编码）
	if len(params) > 0 {
		query := BuildQueryString(params)
		if query != "" {
			path += "?" + query
		}
	}

	var reqBody []byte
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = jsonData
		contentType = "application/json"
	}

	return c.Do(ctx, method, path, nil, contentType, reqBody)
}

// Do 发送HTTP请求，path需已包含查询参数，headers为本次请求附加头
// 非2xx响应同时返回响应体和 *HTTPError，便于上层按响应体翻译错误
func (c *HTTPClient) Do(ctx context.Context, method, path string, headers map[string]string, contentType string, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	url := c.baseURL + path

	var reqBody io.Reader
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// 设置请求头：全局头在前，本次请求头可覆盖
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.debug {
		c.logDebug("request", logrus.Fields{
			"method": method,
			"url":    url,
			"body":   string(body),
		})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.debug {
		c.logDebug("response", logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

func (c *HTTPClient) logDebug(msg string, fields logrus.Fields) {
	if c.log != nil {
		c.log.WithFields(fields).Debug(msg)
		return
	}
	logrus.WithFields(fields).Debug(msg)
}
