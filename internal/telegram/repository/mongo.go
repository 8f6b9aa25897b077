package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lang_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 集合内的两份文档，与文件存储的两个 JSON 文件一一对应
const (
	settingsCollection = "language_tools"
	groupSettingsDocID = "group_settings"
	userBlacklistDocID = "user_blacklist"
)

type groupSettingsDoc struct {
	ID        string                          `bson:"_id"`
	Groups    map[string]models.GroupSettings `bson:"groups"`
	UpdatedAt time.Time                       `bson:"updated_at"`
}

type blacklistDoc struct {
	ID        string    `bson:"_id"`
	Users     []string  `bson:"users"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSettingsRepository 基于 MongoDB 的设定存储
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository 创建 MongoDB 设定存储
func NewMongoSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{
		collection: db.Collection(settingsCollection),
	}
}

// LoadGroupSettings 读取群组设定文档
func (r *MongoSettingsRepository) LoadGroupSettings(ctx context.Context) (map[string]models.GroupSettings, error) {
	var doc groupSettingsDoc
	found, err := r.findDoc(ctx, groupSettingsDocID, &doc)
	if err != nil || !found || doc.Groups == nil {
		return make(map[string]models.GroupSettings), err
	}
	return doc.Groups, nil
}

// SaveGroupSettings 整份替换群组设定文档
func (r *MongoSettingsRepository) SaveGroupSettings(ctx context.Context, settings map[string]models.GroupSettings) error {
	if settings == nil {
		settings = map[string]models.GroupSettings{}
	}
	doc := groupSettingsDoc{
		ID:        groupSettingsDocID,
		Groups:    settings,
		UpdatedAt: time.Now(),
	}
	return r.replaceDoc(ctx, groupSettingsDocID, doc)
}

// LoadBlacklist 读取黑名单文档
func (r *MongoSettingsRepository) LoadBlacklist(ctx context.Context) ([]string, error) {
	var doc blacklistDoc
	found, err := r.findDoc(ctx, userBlacklistDocID, &doc)
	if err != nil || !found {
		return nil, err
	}
	return doc.Users, nil
}

// SaveBlacklist 整份替换黑名单文档
func (r *MongoSettingsRepository) SaveBlacklist(ctx context.Context, users []string) error {
	if users == nil {
		users = []string{}
	}
	doc := blacklistDoc{
		ID:        userBlacklistDocID,
		Users:     users,
		UpdatedAt: time.Now(),
	}
	return r.replaceDoc(ctx, userBlacklistDocID, doc)
}

func (r *MongoSettingsRepository) findDoc(ctx context.Context, id string, out any) (bool, error) {
	result := r.collection.FindOne(ctx, bson.M{"_id": id})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", id, err)
	}

	if err := result.Decode(out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, id, err)
	}
	return true, nil
}

func (r *MongoSettingsRepository) replaceDoc(ctx context.Context, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("failed to save %s: %w", id, err)
	}
	return nil
}
