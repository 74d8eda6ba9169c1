package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/hasher"
	"github.com/moyu-x/dupfind/pkg/scanner"
)

// ErrInvalidConfig 配置校验失败，在遍历开始前终止运行
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Scan struct {
		Recurse         bool   `mapstructure:"recurse"`
		IncludeHidden   bool   `mapstructure:"include_hidden"`
		FollowSymlinks  bool   `mapstructure:"follow_symlinks"`
		HiddenDetection string `mapstructure:"hidden_detection"`
	} `mapstructure:"scan"`
	Hash struct {
		Algorithm  string `mapstructure:"algorithm"`
		BufferSize int    `mapstructure:"buffer_size"`
	} `mapstructure:"hash"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
}

// 命令行参数名到配置键的映射
var flagKeys = map[string]string{
	"recurse":          "scan.recurse",
	"include-hidden":   "scan.include_hidden",
	"follow-symlinks":  "scan.follow_symlinks",
	"hidden-detection": "scan.hidden_detection",
	"algorithm":        "hash.algorithm",
	"buffer-size":      "hash.buffer_size",
	"log-level":        "logging.level",
	"log-file":         "logging.file",
}

var cfg Config

// Load 读取配置：命令行参数 > 环境变量 (DUPFIND_*) > 配置文件 > 默认值
// file 为空时依次在 $HOME/.dupfind、当前目录、/etc/dupfind 中查找 config.yaml，找不到不算错误
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/." + internal.AppName)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/" + internal.AppName)
	}

	v.SetDefault("scan.recurse", false)
	v.SetDefault("scan.include_hidden", false)
	v.SetDefault("scan.follow_symlinks", false)
	v.SetDefault("scan.hidden_detection", "auto")
	v.SetDefault("hash.algorithm", internal.DefaultAlgorithm)
	v.SetDefault("hash.buffer_size", internal.DefaultBufferSize)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.file", "")

	v.SetEnvPrefix(strings.ToUpper(internal.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg = loaded
	return &cfg, nil
}

func Get() *Config {
	return &cfg
}

// RunConfig 把配置和根路径合并为一次运行的参数
func (c *Config) RunConfig(path string) internal.RunConfig {
	return internal.RunConfig{
		Path:            path,
		Recurse:         c.Scan.Recurse,
		IncludeHidden:   c.Scan.IncludeHidden,
		FollowSymlinks:  c.Scan.FollowSymlinks,
		HiddenDetection: c.Scan.HiddenDetection,
		Algorithm:       c.Hash.Algorithm,
		BufferSize:      c.Hash.BufferSize,
	}
}

// Validate 校验运行参数并返回规范化后的副本（根路径转为绝对路径）
func Validate(rc internal.RunConfig) (internal.RunConfig, error) {
	if strings.TrimSpace(rc.Path) == "" {
		return rc, fmt.Errorf("%w: path is required", ErrInvalidConfig)
	}

	if rc.Algorithm == "" {
		rc.Algorithm = internal.DefaultAlgorithm
	}
	if _, err := hasher.Lookup(rc.Algorithm); err != nil {
		return rc, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if rc.BufferSize == 0 {
		rc.BufferSize = internal.DefaultBufferSize
	}
	if rc.BufferSize < 0 {
		return rc, fmt.Errorf("%w: buffer size must be positive, got %d", ErrInvalidConfig, rc.BufferSize)
	}

	if _, err := scanner.DetectorByName(rc.HiddenDetection); err != nil {
		return rc, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	abs, err := filepath.Abs(rc.Path)
	if err != nil {
		return rc, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rc.Path = abs

	return rc, nil
}
