package service

import (
	"context"

	"lang_bot/internal/telegram/models"
)

// SettingsService 群组语言工具设定与用户黑名单
//
// 读取走内存，写入后同步整份持久化
type SettingsService interface {
	// Load 从持久化层加载；数据损坏或读取失败时重置为空并记录日志
	Load(ctx context.Context)

	// Get 获取群组设定，未设定的群组返回零值和 false
	Get(groupID string) (models.GroupSettings, bool)

	// IsBlacklisted 用户是否在黑名单中
	IsBlacklisted(userID string) bool

	// SetFlag 开启或关闭群组的某个模式
	SetFlag(ctx context.Context, groupID string, mode models.Mode, enabled bool) error

	// AddBlacklist 加入黑名单；已存在时 added 为 false 且不写入
	AddBlacklist(ctx context.Context, userID string) (added bool, err error)

	// RemoveBlacklist 移出黑名单；不存在时 removed 为 false 且不写入
	RemoveBlacklist(ctx context.Context, userID string) (removed bool, err error)

	// ListGroups 按群号排序返回全部群组设定
	ListGroups() []GroupEntry

	// ListBlacklist 按用户 ID 排序返回黑名单
	ListBlacklist() []string
}

// GroupEntry 群组设定列表项
type GroupEntry struct {
	GroupID  string
	Settings models.GroupSettings
}
