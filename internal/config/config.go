package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
// 优先级：环境变量 (CATALOG_ 前缀) > 配置文件 > 默认值
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Task     TaskConfig     `mapstructure:"task"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin 模式 debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"` // silent | error | warn | info
}

type StorageConfig struct {
	Provider     string        `mapstructure:"provider"` // local | s3
	BasePath     string        `mapstructure:"base_path"`
	BaseURL      string        `mapstructure:"base_url"`
	Bucket       string        `mapstructure:"bucket"`
	Region       string        `mapstructure:"region"`
	AccessKey    string        `mapstructure:"access_key"`
	SecretKey    string        `mapstructure:"secret_key"`
	Endpoint     string        `mapstructure:"endpoint"`
	CDNDomain    string        `mapstructure:"cdn_domain"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type TaskConfig struct {
	ImagePrune ImagePruneConfig `mapstructure:"image_prune"`
}

// ImagePruneConfig 旧图片行清理任务
type ImagePruneConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
	Keep    int    `mapstructure:"keep"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=catalog password=catalog dbname=catalog port=5432 sslmode=disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.base_url", "/uploads")
	v.SetDefault("storage.fetch_timeout", 15*time.Second)
	// 无默认值的键也要登记，否则 Unmarshal 读不到环境变量
	for _, key := range []string{"bucket", "region", "access_key", "secret_key", "endpoint", "cdn_domain"} {
		v.SetDefault("storage."+key, "")
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")

	v.SetDefault("task.image_prune.enabled", false)
	v.SetDefault("task.image_prune.spec", "0 30 3 * * *")
	v.SetDefault("task.image_prune.keep", 1)
}

// Load 加载配置
// path 为空时只读默认值和环境变量；当前目录存在 .env 时先载入
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	switch c.Storage.Provider {
	case "local", "s3":
	default:
		return fmt.Errorf("不支持的存储提供者: %s", c.Storage.Provider)
	}
	if c.Storage.Provider == "s3" && c.Storage.Bucket == "" {
		return errors.New("storage.bucket 不能为空")
	}
	if c.Task.ImagePrune.Keep < 1 {
		return errors.New("task.image_prune.keep 至少为 1")
	}
	return nil
}
