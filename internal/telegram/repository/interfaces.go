package repository

import (
	"context"
	"errors"

	"lang_bot/internal/telegram/models"
)

// ErrMalformed 持久化数据无法解析
// 调用方应回退为空配置而不是终止进程
var ErrMalformed = errors.New("malformed settings data")

// SettingsRepository 群组设定与用户黑名单的持久化接口
// 每次保存都是整份覆盖写入；数据不存在时 Load 返回空值而不是错误
type SettingsRepository interface {
	// LoadGroupSettings 读取全部群组设定（群号 -> 设定）
	LoadGroupSettings(ctx context.Context) (map[string]models.GroupSettings, error)

	// SaveGroupSettings 覆盖写入全部群组设定
	SaveGroupSettings(ctx context.Context, settings map[string]models.GroupSettings) error

	// LoadBlacklist 读取用户黑名单
	LoadBlacklist(ctx context.Context) ([]string, error)

	// SaveBlacklist 覆盖写入用户黑名单
	SaveBlacklist(ctx context.Context, users []string) error
}
