package translate

import "fmt"

// 固定文案
const (
	UnknownLabel      = "未知"
	MissingTargetText = "翻译失败"
	TooLongMessage    = "文本过长，请不要超过200个字符。"
	separator         = "--------------------"
)

// Status 翻译调用结果类型
type Status int

const (
	// StatusFailed 网络错误、超时、状态码或业务码异常、数据缺失
	StatusFailed Status = iota
	// StatusOK 成功，Result 有值
	StatusOK
	// StatusTooLong 超过 MaxTextLength，未发起请求
	StatusTooLong
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTooLong:
		return "too_long"
	default:
		return "failed"
	}
}

// Result 一次成功翻译的内容
type Result struct {
	SourceText string
	SourceLang string
	TargetText string
	TargetLang string
}

// Outcome 翻译调用的结果，失败不携带错误信息
type Outcome struct {
	Status Status
	Result *Result
}

// Reply 返回应发送给用户的文本；失败时 ok 为 false
func (o Outcome) Reply() (text string, ok bool) {
	switch o.Status {
	case StatusOK:
		if o.Result == nil {
			return "", false
		}
		return Format(o.Result), true
	case StatusTooLong:
		return TooLongMessage, true
	default:
		return "", false
	}
}

// Format 渲染翻译结果：原文块、分隔线、译文块
func Format(r *Result) string {
	sourceLang, targetLang := r.SourceLang, r.TargetLang
	if sourceLang == "" {
		sourceLang = UnknownLabel
	}
	if targetLang == "" {
		targetLang = UnknownLabel
	}
	return fmt.Sprintf("原文 (%s):\n%s\n%s\n译文 (%s):\n%s",
		sourceLang, r.SourceText, separator, targetLang, r.TargetText)
}
