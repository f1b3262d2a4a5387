/**
 * 服务:模型后端分类器
 * @author: sun977
 * @date: 2026.02.12
 * @description: 通过本地模型服务(Ollama风格HTTP接口)解析责任人与分类设备类型
 * @func: LLMClient / LLMOwnerParser / LLMDeviceClassifier
 * @note: 后端调用最多重试1次,失败后无条件降级到规则实现,错误不上抛
 */
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neonorm/internal/model/inventory"
	"neonorm/internal/pkg/logger"
)

// maxLLMAttempts 后端调用总次数上限(1次调用+1次重试)
const maxLLMAttempts = 2

// generateRequest 模型服务请求体
type generateRequest struct {
	Model  string `json:"model"`  // 模型名称
	Prompt string `json:"prompt"` // 提示词
	Stream bool   `json:"stream"` // 关闭流式输出
	Format string `json:"format"` // 要求JSON输出
}

// generateResponse 模型服务响应体
type generateResponse struct {
	Response string `json:"response"` // 模型完整回答
}

// LLMClient 模型服务HTTP客户端
type LLMClient struct {
	endpoint   string       // 服务地址,如 http://localhost:11434
	model      string       // 模型名称
	httpClient *http.Client // 复用的HTTP客户端
}

// NewLLMClient 创建模型服务客户端
func NewLLMClient(endpoint, model string, timeout time.Duration) *LLMClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate 单次调用模型服务
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm backend returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read llm response: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("malformed llm response: %w", err)
	}
	return gr.Response, nil
}

// generateWithRetry 带重试的调用,最多 maxLLMAttempts 次
func (c *LLMClient) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxLLMAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		out, err := c.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// LLMOwnerParser 模型后端责任人解析器
type LLMOwnerParser struct {
	client   *LLMClient
	cache    *ResponseCache
	observer InvocationObserver
}

// NewLLMOwnerParser 创建模型后端责任人解析器
func NewLLMOwnerParser(client *LLMClient, cache *ResponseCache, observer InvocationObserver) *LLMOwnerParser {
	return &LLMOwnerParser{client: client, cache: cache, observer: observer}
}

// ownerReply 责任人解析的模型输出结构
type ownerReply struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team"`
}

// Parse 解析责任人文本
// 空输入直接返回全空,不触发后端;后端失败降级到规则抽取
func (p *LLMOwnerParser) Parse(ctx context.Context, rawText, rowID string) OwnerResult {
	o := strings.TrimSpace(rawText)
	if o == "" {
		return OwnerResult{}
	}

	prompt := buildOwnerPrompt(o)

	if cached, ok := p.cache.Get(ctx, PurposeOwnerParsing, o); ok {
		var reply ownerReply
		if err := json.Unmarshal([]byte(cached), &reply); err == nil {
			result := OwnerResult{Name: reply.Name, Email: reply.Email, Team: reply.Team}
			notifyObserver(p.observer, Invocation{
				Purpose:     PurposeOwnerParsing,
				SourceRowID: rowID,
				Prompt:      prompt,
				Response:    cached,
				Cached:      true,
				Parsed:      ownerParsedFields(result),
			})
			return result
		}
	}

	raw, err := p.client.generateWithRetry(ctx, prompt)
	if err == nil {
		var reply ownerReply
		if jsonErr := json.Unmarshal([]byte(raw), &reply); jsonErr == nil {
			result := OwnerResult{Name: reply.Name, Email: reply.Email, Team: reply.Team}
			p.cache.Set(ctx, PurposeOwnerParsing, o, raw)
			notifyObserver(p.observer, Invocation{
				Purpose:     PurposeOwnerParsing,
				SourceRowID: rowID,
				Prompt:      prompt,
				Response:    raw,
				Parsed:      ownerParsedFields(result),
			})
			return result
		}
		err = fmt.Errorf("malformed owner reply: %s", raw)
	}

	// 后端不可用或响应异常,降级到规则抽取
	logger.LogBusinessError(err, "", 0, "", "owner_parse_fallback", "SERVICE", map[string]interface{}{
		"source_row_id": rowID,
	})
	result := ExtractOwner(o)
	notifyObserver(p.observer, Invocation{
		Purpose:      PurposeOwnerParsing,
		SourceRowID:  rowID,
		Prompt:       prompt,
		UsedFallback: true,
		Parsed:       ownerParsedFields(result),
	})
	return result
}

// ownerParsedFields 审计记录的结构化字段
func ownerParsedFields(r OwnerResult) map[string]interface{} {
	return map[string]interface{}{
		"parsed_name":  r.Name,
		"parsed_email": r.Email,
		"parsed_team":  r.Team,
	}
}

// LLMDeviceClassifier 模型后端设备分类器
type LLMDeviceClassifier struct {
	client    *LLMClient
	cache     *ResponseCache
	observer  InvocationObserver
	threshold float64 // 置信分数阈值,达到判 medium,否则 low
}

// NewLLMDeviceClassifier 创建模型后端设备分类器
func NewLLMDeviceClassifier(client *LLMClient, cache *ResponseCache, observer InvocationObserver) *LLMDeviceClassifier {
	return &LLMDeviceClassifier{client: client, cache: cache, observer: observer, threshold: 0.8}
}

// deviceReply 设备分类的模型输出结构
type deviceReply struct {
	DeviceType string  `json:"device_type"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify 分类设备类型
// 显式已知类型短路;后端失败降级到关键词匹配
func (c *LLMDeviceClassifier) Classify(ctx context.Context, input DeviceInput, rowID string) DeviceResult {
	if t, ok := explicitKnownType(input.ExplicitType); ok {
		return DeviceResult{DeviceType: t, Confidence: inventory.ConfidenceHigh}
	}

	prompt := buildDevicePrompt(input)
	cacheInput := input.Hostname + "|" + input.Notes + "|" + input.IP

	if cached, ok := c.cache.Get(ctx, PurposeDeviceTypeClass, cacheInput); ok {
		if result, parsed, replyOK := c.parseDeviceReply(cached); replyOK {
			notifyObserver(c.observer, Invocation{
				Purpose:     PurposeDeviceTypeClass,
				SourceRowID: rowID,
				Prompt:      prompt,
				Response:    cached,
				Cached:      true,
				Parsed:      parsed,
			})
			return result
		}
	}

	raw, err := c.client.generateWithRetry(ctx, prompt)
	if err == nil {
		if result, parsed, replyOK := c.parseDeviceReply(raw); replyOK {
			c.cache.Set(ctx, PurposeDeviceTypeClass, cacheInput, raw)
			notifyObserver(c.observer, Invocation{
				Purpose:     PurposeDeviceTypeClass,
				SourceRowID: rowID,
				Prompt:      prompt,
				Response:    raw,
				Parsed:      parsed,
			})
			return result
		}
		err = fmt.Errorf("malformed device reply: %s", raw)
	}

	// 后端不可用或响应异常,降级到关键词匹配
	logger.LogBusinessError(err, "", 0, "", "device_classify_fallback", "SERVICE", map[string]interface{}{
		"source_row_id": rowID,
	})
	result := MatchDeviceKeywords(input.Hostname, input.Notes)
	notifyObserver(c.observer, Invocation{
		Purpose:      PurposeDeviceTypeClass,
		SourceRowID:  rowID,
		Prompt:       prompt,
		UsedFallback: true,
		Parsed: map[string]interface{}{
			"classification": result.DeviceType,
			"confidence":     result.Confidence,
		},
	})
	return result
}

// parseDeviceReply 解析模型输出并映射置信度
// 分数达到阈值判 medium,否则 low (与后端是否可用无关,保持既有语义)
func (c *LLMDeviceClassifier) parseDeviceReply(raw string) (DeviceResult, map[string]interface{}, bool) {
	var reply deviceReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return DeviceResult{}, nil, false
	}
	deviceType := strings.ToLower(strings.TrimSpace(reply.DeviceType))
	if deviceType == "" {
		deviceType = "unknown"
	}
	confidence := inventory.ConfidenceLow
	if reply.Confidence >= c.threshold {
		confidence = inventory.ConfidenceMedium
	}
	parsed := map[string]interface{}{
		"classification": deviceType,
		"confidence":     reply.Confidence,
		"reasoning":      reply.Reasoning,
	}
	return DeviceResult{DeviceType: deviceType, Confidence: confidence}, parsed, true
}

// buildOwnerPrompt 构造责任人解析提示词
// 核心规则:专有名词判人名,普通名词判团队,括号内容判团队,邮箱单独抽取
func buildOwnerPrompt(owner string) string {
	return fmt.Sprintf(`Parse the owner information from this text into structured fields.

Owner text: "%s"

IMPORTANT INSTRUCTIONS:
1. If the text is a PROPER NOUN (person's name like "John", "Priya", "Jane"), put it in "name"
2. If the text is a COMMON NOUN (team/department like "ops", "platform", "security", "facilities"), put it in "team"
3. Extract any email addresses found
4. A team in parentheses like "(engineering)" goes in "team"

Examples:

Input: "priya (platform) priya@corp.example.com"
Output: {"name": "priya", "email": "priya@corp.example.com", "team": "platform"}

Input: "ops"
Output: {"name": "", "email": "", "team": "ops"}

Input: "jane@corp.example.com"
Output: {"name": "jane", "email": "jane@corp.example.com", "team": ""}

Extract and return:
- name: Person's name (empty string if the text is a team/department)
- email: Email address (empty string if not present)
- team: Team/department name (empty string if the text is a person's name)

Respond ONLY with valid JSON, no additional text.`, owner)
}

// buildDevicePrompt 构造设备分类提示词
// 要求证据不足时返回 unknown 而不是猜测
func buildDevicePrompt(input DeviceInput) string {
	return fmt.Sprintf(`Classify this network device type based on the information provided.

Hostname: %s
Notes: %s
IP Address: %s

IMPORTANT INSTRUCTIONS:
- Analyze the hostname patterns and notes carefully
- If there is clear evidence (hostname contains srv, sw, rtr, etc. OR notes describe the device), classify it
- If there is NO clear supporting information to determine the device type, respond with "unknown"
- Do NOT guess if the information is insufficient

Common patterns to look for:
- Servers: srv, host, db, web, app, sql
- Routers: rtr, router, gw, gateway, edge
- Switches: sw, switch, core
- Printers: print, printer
- IoT devices: cam, camera, iot, sensor
- Access Points: ap, wireless, wifi
- Firewalls: fw, firewall

Respond with a JSON object:
{"device_type": "server", "confidence": 0.85, "reasoning": "Brief explanation of why you chose this classification"}

Valid device types: server, router, switch, printer, iot, firewall, access point, workstation, unknown

If uncertain or no clear indicators exist, use device_type: "unknown" with low confidence.`,
		orNA(input.Hostname), orNA(input.Notes), orNA(input.IP))
}

// orNA 空值占位
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
