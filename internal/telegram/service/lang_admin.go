package service

import (
	"context"
	"fmt"
	"strings"

	"lang_bot/internal/telegram/models"
)

// 管理指令回复文案
const (
	LangHelpText = "语言工具管理指令:\n" +
		"--- 功能开关 ---\n" +
		"/lang enable <模式> [群组ID]\n" +
		"/lang disable <模式> [群组ID]\n" +
		"可用模式: standard, cte\n" +
		"--- 状态查询 ---\n" +
		"/lang status [群组ID]\n" +
		"/lang list_groups\n" +
		"--- 用户黑名单 ---\n" +
		"/lang add_user [用户ID]\n" +
		"/lang remove_user [用户ID]\n" +
		"/lang list_users"

	LangBadArgsMessage  = "参数错误或未知的子命令。"
	LangNoGroupsMessage = "当前没有任何群组设定。"
	LangNoUsersMessage  = "当前用户黑名单为空。"
	persistFailedSuffix = "\n⚠️ 保存失败，重启后该更改可能丢失。"
)

// AdminRequest 一次 /lang 指令调用
type AdminRequest struct {
	// 指令参数（不含指令名本身）
	Args []string
	// 指令所在群组，私聊时为空
	CurrentGroupID string
	// 被回复消息的发送者，未回复时为空
	ReplyUserID string
}

// LangAdmin 处理 /lang 管理指令
type LangAdmin struct {
	settings SettingsService
}

// NewLangAdmin 创建管理指令处理器
func NewLangAdmin(settings SettingsService) *LangAdmin {
	return &LangAdmin{settings: settings}
}

// Execute 执行管理指令并返回回复文本
//
// 目标 ID 的取值规则:
//   - 第二个参数是 ID 时取第二个参数
//   - 只有一个参数且是 ID 时取该参数
//   - 否则群组指令取当前群组，黑名单指令取被回复的用户
func (a *LangAdmin) Execute(ctx context.Context, req AdminRequest) string {
	if len(req.Args) == 0 {
		return LangHelpText
	}

	command := strings.ToLower(req.Args[0])
	params := req.Args[1:]
	targetID := parseTargetID(params)

	switch command {
	case "enable", "disable":
		if len(params) == 0 {
			return LangBadArgsMessage
		}
		mode, ok := models.ParseMode(params[0])
		if !ok {
			return LangBadArgsMessage
		}
		if targetID == "" && len(params) == 1 {
			targetID = req.CurrentGroupID
		}
		if targetID == "" {
			return LangBadArgsMessage
		}
		return a.setFlag(ctx, targetID, mode, command == "enable")

	case "status":
		if targetID == "" && len(params) == 0 {
			targetID = req.CurrentGroupID
		}
		if targetID == "" {
			return LangBadArgsMessage
		}
		return a.status(targetID)

	case "list_groups":
		return a.listGroups()

	case "add_user", "remove_user":
		if targetID == "" && len(params) == 0 {
			targetID = req.ReplyUserID
		}
		if targetID == "" {
			return LangBadArgsMessage
		}
		if command == "add_user" {
			return a.addUser(ctx, targetID)
		}
		return a.removeUser(ctx, targetID)

	case "list_users":
		return a.listUsers()

	default:
		return LangBadArgsMessage
	}
}

func (a *LangAdmin) setFlag(ctx context.Context, groupID string, mode models.Mode, enabled bool) string {
	action := "禁用"
	if enabled {
		action = "启用"
	}

	msg := fmt.Sprintf("成功在群 %s 中 %s '%s' 模式。", groupID, action, mode)
	if err := a.settings.SetFlag(ctx, groupID, mode, enabled); err != nil {
		msg += persistFailedSuffix
	}
	return msg
}

func (a *LangAdmin) status(groupID string) string {
	s, _ := a.settings.Get(groupID)
	return fmt.Sprintf("群 %s 的状态：\n- Standard 模式: %s\n- CTE 模式: %s",
		groupID, onOff(s.Enabled(models.ModeStandard)), onOff(s.Enabled(models.ModeCTE)))
}

func (a *LangAdmin) listGroups() string {
	entries := a.settings.ListGroups()
	if len(entries) == 0 {
		return LangNoGroupsMessage
	}

	var sb strings.Builder
	sb.WriteString("已设定的群组列表：")
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n- %s: S=%s, C=%s", e.GroupID, checkMark(e.Settings.Enabled(models.ModeStandard)), checkMark(e.Settings.Enabled(models.ModeCTE)))
	}
	return sb.String()
}

func (a *LangAdmin) addUser(ctx context.Context, userID string) string {
	added, err := a.settings.AddBlacklist(ctx, userID)
	if !added {
		return fmt.Sprintf("用户 %s 已在黑名单中。", userID)
	}

	msg := fmt.Sprintf("成功将用户 %s 加入黑名单。", userID)
	if err != nil {
		msg += persistFailedSuffix
	}
	return msg
}

func (a *LangAdmin) removeUser(ctx context.Context, userID string) string {
	removed, err := a.settings.RemoveBlacklist(ctx, userID)
	if !removed {
		return fmt.Sprintf("用户 %s 不在黑名单中。", userID)
	}

	msg := fmt.Sprintf("成功将用户 %s 从黑名单中移除。", userID)
	if err != nil {
		msg += persistFailedSuffix
	}
	return msg
}

func (a *LangAdmin) listUsers() string {
	users := a.settings.ListBlacklist()
	if len(users) == 0 {
		return LangNoUsersMessage
	}
	return "用户黑名单列表：\n" + strings.Join(users, "\n")
}

func parseTargetID(params []string) string {
	switch {
	case len(params) > 1 && isID(params[1]):
		return params[1]
	case len(params) == 1 && isID(params[0]):
		return params[0]
	default:
		return ""
	}
}

// isID Telegram 的群组 ID 为负数
func isID(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func onOff(v bool) string {
	if v {
		return "开启"
	}
	return "关闭"
}

func checkMark(v bool) string {
	if v {
		return "✅"
	}
	return "❌"
}
