package langtools

import (
	"strings"

	"lang_bot/internal/convert"
	"lang_bot/internal/telegram/models"
	"lang_bot/internal/translate"
)

// ActionKind 自动处理的动作类型
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSendText
	ActionTranslate
)

func (k ActionKind) String() string {
	switch k {
	case ActionSendText:
		return "send_text"
	case ActionTranslate:
		return "translate"
	default:
		return "none"
	}
}

// Action 调度结果，由调用方执行实际的网络请求和发送
type Action struct {
	Kind       ActionKind
	Text       string
	TargetLang string
}

// Snapshot 处理单条消息时的设定快照
type Snapshot struct {
	Group       models.GroupSettings
	Blacklisted bool
}

// Engine 自动语言处理的决策引擎，不做任何 I/O
type Engine struct {
	converter convert.Converter
	cteTarget string
}

// NewEngine 创建决策引擎，cteTarget 为 cte 模式的目标语言
func NewEngine(converter convert.Converter, cteTarget string) *Engine {
	if converter == nil {
		converter = convert.Identity
	}
	if cteTarget == "" {
		cteTarget = "en"
	}
	return &Engine{converter: converter, cteTarget: cteTarget}
}

// Decide 按顺序匹配规则，返回至多一个动作
func (e *Engine) Decide(msg *models.Message, snap Snapshot) Action {
	if msg == nil || snap.Blacklisted {
		return Action{}
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || IsCommand(text) || ContainsURL(text) {
		return Action{}
	}

	if !msg.IsGroup() {
		if IsForeign(text) {
			return translateTo(text, translate.TargetAuto)
		}
		return e.convert(text)
	}

	settings := snap.Group
	if settings.IsEmpty() {
		return Action{}
	}

	switch {
	case settings.Standard && IsForeign(text):
		return translateTo(text, translate.TargetAuto)
	case settings.CTE && IsMostlyNative(text):
		return translateTo(text, e.cteTarget)
	case settings.Standard:
		return e.convert(text)
	default:
		// 仅开启 cte 时不做繁简转换
		return Action{}
	}
}

func (e *Engine) convert(text string) Action {
	converted := e.converter.Convert(text)
	if converted == text {
		return Action{}
	}
	return Action{Kind: ActionSendText, Text: converted}
}

func translateTo(text, target string) Action {
	return Action{Kind: ActionTranslate, Text: text, TargetLang: target}
}
