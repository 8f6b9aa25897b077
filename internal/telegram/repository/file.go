package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"lang_bot/internal/telegram/models"
)

// 数据文件名
const (
	GroupSettingsFile = "group_settings.json"
	BlacklistFile     = "user_blacklist.json"
)

// FileSettingsRepository 基于 JSON 文件的设定存储
type FileSettingsRepository struct {
	dir string
}

// NewFileSettingsRepository 创建文件存储，目录不存在时自动创建
func NewFileSettingsRepository(dir string) (*FileSettingsRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileSettingsRepository{dir: dir}, nil
}

// LoadGroupSettings 读取 group_settings.json
func (r *FileSettingsRepository) LoadGroupSettings(ctx context.Context) (map[string]models.GroupSettings, error) {
	settings := make(map[string]models.GroupSettings)
	if err := r.readJSON(GroupSettingsFile, &settings); err != nil {
		return make(map[string]models.GroupSettings), err
	}
	if settings == nil {
		settings = make(map[string]models.GroupSettings)
	}
	return settings, nil
}

// SaveGroupSettings 覆盖写入 group_settings.json
func (r *FileSettingsRepository) SaveGroupSettings(ctx context.Context, settings map[string]models.GroupSettings) error {
	if settings == nil {
		settings = map[string]models.GroupSettings{}
	}
	return r.writeJSON(GroupSettingsFile, settings)
}

// LoadBlacklist 读取 user_blacklist.json
func (r *FileSettingsRepository) LoadBlacklist(ctx context.Context) ([]string, error) {
	var users []string
	if err := r.readJSON(BlacklistFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveBlacklist 覆盖写入 user_blacklist.json
func (r *FileSettingsRepository) SaveBlacklist(ctx context.Context, users []string) error {
	if users == nil {
		users = []string{}
	}
	return r.writeJSON(BlacklistFile, users)
}

func (r *FileSettingsRepository) readJSON(name string, out any) error {
	path := filepath.Join(r.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

// writeJSON 先写临时文件再 rename，避免写到一半留下损坏的文件
func (r *FileSettingsRepository) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(r.dir, name)
	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
