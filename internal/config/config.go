package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// 存储后端
const (
	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"
)

// Config 应用程序配置
type Config struct {
	// Telegram Bot API Token
	TelegramToken string `validate:"required"`
	// 可使用 /lang 管理指令的用户 ID
	BotOwnerIDs []int64
	LogLevel    string `validate:"oneof=trace debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`

	// 存储后端：file 使用 DataDir 下的 JSON 文件，mongo 使用 MongoURI
	StoreBackend string `validate:"oneof=file mongo"`
	DataDir      string `validate:"required_if=StoreBackend file"`
	MongoURI     string `validate:"required_if=StoreBackend mongo"`
	MongoDBName  string

	// gocc 字典根目录（包含 config/t2s.json 与 dictionary/），为空时使用 gocc 默认目录
	OpenCCDir string `validate:"omitempty,dir"`

	Translate TranslateConfig
	Worker    WorkerConfig

	// 为空时不启动 /metrics
	MetricsAddr string
}

// TranslateConfig 翻译接口配置
type TranslateConfig struct {
	Endpoint string        `validate:"required,url"`
	Timeout  time.Duration `validate:"min=1s,max=2m"`
	// cte 模式的目标语言
	CTETarget string `validate:"required"`
}

// WorkerConfig 消息处理工作池配置
type WorkerConfig struct {
	Count     int `validate:"min=1,max=256"`
	QueueSize int `validate:"min=1"`
}

// 默认值
const (
	DefaultDataDir          = "data/language_tools"
	DefaultMongoDBName      = "lang_bot"
	DefaultTranslateURL     = "https://60s.viki.moe/v2/fanyi"
	DefaultTranslateTimeout = 20 * time.Second
	DefaultCTETarget        = "en"
	DefaultWorkerCount      = 8
	DefaultWorkerQueueSize  = 256
)

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("LOG_FORMAT", "text"),
		StoreBackend:  envOrDefault("STORE_BACKEND", StoreBackendFile),
		DataDir:       envOrDefault("DATA_DIR", DefaultDataDir),
		MongoURI:      strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDBName:   envOrDefault("MONGO_DB_NAME", DefaultMongoDBName),
		OpenCCDir:     strings.TrimSpace(os.Getenv("OPENCC_DIR")),
		Translate: TranslateConfig{
			Endpoint:  envOrDefault("TRANSLATE_ENDPOINT", DefaultTranslateURL),
			Timeout:   DefaultTranslateTimeout,
			CTETarget: envOrDefault("CTE_TARGET_LANG", DefaultCTETarget),
		},
		Worker: WorkerConfig{
			Count:     DefaultWorkerCount,
			QueueSize: DefaultWorkerQueueSize,
		},
		MetricsAddr: strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	// 解析BOT_OWNER_IDS
	if ownerIDsStr := os.Getenv("BOT_OWNER_IDS"); ownerIDsStr != "" {
		ids, err := parseOwnerIDs(ownerIDsStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse BOT_OWNER_IDS: %w", err)
		}
		cfg.BotOwnerIDs = ids
	}

	if timeoutStr := strings.TrimSpace(os.Getenv("TRANSLATE_TIMEOUT_SECONDS")); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid TRANSLATE_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.Translate.Timeout = time.Duration(seconds) * time.Second
	}

	var err error
	if cfg.Worker.Count, err = intFromEnv("WORKER_COUNT", DefaultWorkerCount); err != nil {
		return nil, err
	}
	if cfg.Worker.QueueSize, err = intFromEnv("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置，并规范化 cte 目标语言代码
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	tag, err := language.Parse(c.Translate.CTETarget)
	if err != nil {
		return fmt.Errorf("%w: CTE_TARGET_LANG %q: %v", ErrInvalidConfig, c.Translate.CTETarget, err)
	}
	c.Translate.CTETarget = tag.String()

	return nil
}

// IsOwner 判断用户是否在 BOT_OWNER_IDS 中
func (c *Config) IsOwner(userID int64) bool {
	for _, id := range c.BotOwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// parseOwnerIDs 解析逗号分隔的用户ID字符串
// 支持格式: "123456789" 或 "123456789,987654321"
func parseOwnerIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid owner ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
