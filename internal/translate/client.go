package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"lang_bot/internal/config"
	"lang_bot/internal/logger"
)

const (
	// MaxTextLength 单次翻译的最大字符数（按 rune 计）
	MaxTextLength = 200
	// TargetAuto 由翻译服务推断目标语言
	TargetAuto = "auto"

	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 256 * 1024
	successCode      = 200
	defaultUserAgent = "Mozilla/5.0 (compatible; lang_bot)"
	probeText        = "ping"
)

// Client 翻译接口客户端，每次调用恰好一次 HTTP 往返
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option 自定义客户端行为
type Option func(*Client)

// WithHTTPClient 自定义 HTTP 客户端（测试时使用）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient 根据配置创建翻译客户端
func NewClient(cfg config.TranslateConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type apiText struct {
	TypeDesc *string `json:"type_desc"`
	Text     *string `json:"text"`
}

type apiData struct {
	Source *apiText `json:"source"`
	Target *apiText `json:"target"`
}

type apiResponse struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

// Translate 翻译 text 到 target（"auto" 或语言代码，例如 "en"）
// 任何失败都收敛为 StatusFailed，不会返回错误或 panic
func (c *Client) Translate(ctx context.Context, text, target string) (outcome Outcome) {
	if utf8.RuneCountInString(text) > MaxTextLength {
		return Outcome{Status: StatusTooLong}
	}
	if text == "" {
		return Outcome{Status: StatusFailed}
	}
	if target == "" {
		target = TargetAuto
	}

	defer func() {
		if r := recover(); r != nil {
			logger.L().Errorf("Translate panic recovered: %v", r)
			outcome = Outcome{Status: StatusFailed}
		}
	}()

	result, err := c.do(ctx, text, target)
	if err != nil {
		logger.L().Warnf("Translate failed: target=%s, error=%v", target, err)
		return Outcome{Status: StatusFailed}
	}

	logger.L().Debugf("Translated %d chars: %s -> %s", utf8.RuneCountInString(text), result.SourceLang, result.TargetLang)
	return Outcome{Status: StatusOK, Result: result}
}

func (c *Client) do(ctx context.Context, text, target string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(text, target), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call translate api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("translate api returned status: %d", resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if envelope.Code != successCode {
		return nil, fmt.Errorf("translate api error: code=%d", envelope.Code)
	}

	raw := strings.TrimSpace(string(envelope.Data))
	if raw == "" || raw == "null" || raw == "{}" {
		return nil, fmt.Errorf("translate api returned no data")
	}

	var data apiData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}

	return data.toResult(text), nil
}

// Probe 发送一次最短的翻译请求，返回耗时与 HTTP 状态码，不解析响应体
func (c *Client) Probe(ctx context.Context) (time.Duration, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(probeText, TargetAuto), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	return time.Since(start), resp.StatusCode, nil
}

func (c *Client) requestURL(text, target string) string {
	return fmt.Sprintf("%s?text=%s&from=%s&to=%s",
		c.endpoint, escapeText(text), TargetAuto, url.QueryEscape(target))
}

// escapeText 按百分号编码文本，空格编码为 %20 而不是 +
func escapeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// toResult 补全缺失字段：语言标签缺失为“未知”，原文缺失用输入文本，译文缺失为“翻译失败”
func (d apiData) toResult(input string) *Result {
	return &Result{
		SourceText: pick(d.Source, func(t *apiText) *string { return t.Text }, input),
		SourceLang: pick(d.Source, func(t *apiText) *string { return t.TypeDesc }, UnknownLabel),
		TargetText: pick(d.Target, func(t *apiText) *string { return t.Text }, MissingTargetText),
		TargetLang: pick(d.Target, func(t *apiText) *string { return t.TypeDesc }, UnknownLabel),
	}
}

func pick(t *apiText, field func(*apiText) *string, fallback string) string {
	if t == nil {
		return fallback
	}
	if v := field(t); v != nil {
		return *v
	}
	return fallback
}
