package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"lang_bot/internal/logger"
	"lang_bot/internal/metrics"
	"lang_bot/internal/telegram/models"
	"lang_bot/internal/telegram/repository"
)

// SettingsStore SettingsService 的内存实现，写入时同步持久化
type SettingsStore struct {
	repo    repository.SettingsRepository
	metrics *metrics.Metrics

	mu        sync.RWMutex
	groups    map[string]models.GroupSettings
	blacklist map[string]struct{}
}

// NewSettingsStore 创建设定存储，需调用 Load 加载已有数据；m 可以为 nil
func NewSettingsStore(repo repository.SettingsRepository, m *metrics.Metrics) *SettingsStore {
	return &SettingsStore{
		repo:      repo,
		metrics:   m,
		groups:    make(map[string]models.GroupSettings),
		blacklist: make(map[string]struct{}),
	}
}

// Load 加载群组设定和黑名单
func (s *SettingsStore) Load(ctx context.Context) {
	groups, err := s.repo.LoadGroupSettings(ctx)
	if err != nil {
		logLoadError("group settings", err)
		groups = nil
	}

	users, err := s.repo.LoadBlacklist(ctx)
	if err != nil {
		logLoadError("user blacklist", err)
		users = nil
	}

	blacklist := make(map[string]struct{}, len(users))
	for _, id := range users {
		blacklist[id] = struct{}{}
	}
	if groups == nil {
		groups = make(map[string]models.GroupSettings)
	}

	s.mu.Lock()
	s.groups = groups
	s.blacklist = blacklist
	s.mu.Unlock()

	logger.L().Infof("Language tools settings loaded: groups=%d, blacklisted_users=%d", len(groups), len(blacklist))
}

func logLoadError(what string, err error) {
	if errors.Is(err, repository.ErrMalformed) {
		logger.L().Warnf("Language tools %s is malformed, resetting to empty: %v", what, err)
		return
	}
	logger.L().Errorf("Failed to load language tools %s, resetting to empty: %v", what, err)
}

// Get 获取群组设定
func (s *SettingsStore) Get(groupID string) (models.GroupSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.groups[groupID]
	return settings, ok
}

// IsBlacklisted 用户是否在黑名单中
func (s *SettingsStore) IsBlacklisted(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.blacklist[userID]
	return ok
}

// SetFlag 开启或关闭群组模式，并整份保存群组设定
// 保存失败时内存中的修改仍然保留
func (s *SettingsStore) SetFlag(ctx context.Context, groupID string, mode models.Mode, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[groupID] = s.groups[groupID].With(mode, enabled)

	if err := s.repo.SaveGroupSettings(ctx, s.groups); err != nil {
		return s.persistFailed("group settings", err)
	}

	logger.L().Infof("Group %s mode %s set to %v", groupID, mode, enabled)
	return nil
}

// AddBlacklist 加入黑名单
func (s *SettingsStore) AddBlacklist(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blacklist[userID]; ok {
		return false, nil
	}
	s.blacklist[userID] = struct{}{}

	if err := s.repo.SaveBlacklist(ctx, s.sortedBlacklist()); err != nil {
		return true, s.persistFailed("user blacklist", err)
	}

	logger.L().Infof("User %s added to language tools blacklist", userID)
	return true, nil
}

// RemoveBlacklist 移出黑名单
func (s *SettingsStore) RemoveBlacklist(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blacklist[userID]; !ok {
		return false, nil
	}
	delete(s.blacklist, userID)

	if err := s.repo.SaveBlacklist(ctx, s.sortedBlacklist()); err != nil {
		return true, s.persistFailed("user blacklist", err)
	}

	logger.L().Infof("User %s removed from language tools blacklist", userID)
	return true, nil
}

// ListGroups 按群号排序返回全部群组设定
func (s *SettingsStore) ListGroups() []GroupEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]GroupEntry, 0, len(s.groups))
	for id, settings := range s.groups {
		entries = append(entries, GroupEntry{GroupID: id, Settings: settings})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].GroupID < entries[j].GroupID
	})
	return entries
}

// ListBlacklist 按用户 ID 排序返回黑名单
func (s *SettingsStore) ListBlacklist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedBlacklist()
}

// 调用方需持有锁
func (s *SettingsStore) sortedBlacklist() []string {
	users := make([]string, 0, len(s.blacklist))
	for id := range s.blacklist {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

func (s *SettingsStore) persistFailed(what string, err error) error {
	s.metrics.ObservePersistError()
	logger.L().Errorf("Failed to persist language tools %s: %v", what, err)
	return fmt.Errorf("failed to persist %s: %w", what, err)
}
