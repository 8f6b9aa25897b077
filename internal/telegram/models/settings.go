package models

import "strings"

// Mode 群组语言工具模式
type Mode string

const (
	ModeStandard Mode = "standard" // 外语译中文 + 繁转简
	ModeCTE      Mode = "cte"      // 中文译英文
)

// ParseMode 解析管理指令中的模式名（大小写不敏感）
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStandard:
		return ModeStandard, true
	case ModeCTE:
		return ModeCTE, true
	default:
		return "", false
	}
}

// GroupSettings 群组语言工具配置
// 未配置的群组等同于零值（全部关闭）
type GroupSettings struct {
	Standard bool `json:"standard" bson:"standard"`
	CTE      bool `json:"cte" bson:"cte"`
}

// IsEmpty 没有开启任何模式
func (s GroupSettings) IsEmpty() bool {
	return !s.Standard && !s.CTE
}

// Enabled 返回指定模式是否开启
func (s GroupSettings) Enabled(mode Mode) bool {
	switch mode {
	case ModeStandard:
		return s.Standard
	case ModeCTE:
		return s.CTE
	default:
		return false
	}
}

// With 返回设置了指定模式开关的副本
func (s GroupSettings) With(mode Mode, enabled bool) GroupSettings {
	switch mode {
	case ModeStandard:
		s.Standard = enabled
	case ModeCTE:
		s.CTE = enabled
	}
	return s
}
