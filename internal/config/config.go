package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resume-match-go/internal/types"
)

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8888" or "0.0.0.0:8888"
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// EmbeddingConfig Embedding服务配置 (OpenAI兼容端点)
type EmbeddingConfig struct {
	Model          string `yaml:"model"`
	Dimensions     int    `yaml:"dimensions"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 请求超时(秒)，超时按服务不可用降级
}

// ScoringConfig 评分权重配置
type ScoringConfig struct {
	Weights types.WeightVector `yaml:"weights"` // 各维度权重，和必须为1.0
}

// DictionaryConfig 词表配置
type DictionaryConfig struct {
	Path string `yaml:"path"` // 自定义词表YAML路径，留空使用内置词表
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // OTLP gRPC 端点，例如 "localhost:4317"
}

// AuthConfig API鉴权配置
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // 允许访问的API密钥，为空则不启用鉴权
}

// Config 应用程序配置
type Config struct {
	Embedding struct {
		APIKey          string `yaml:"api_key"`
		EmbeddingConfig `yaml:",inline"`
	} `yaml:"embedding"`

	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 评分配置
	Scoring ScoringConfig `yaml:"scoring"`

	// 词表配置
	Dictionary DictionaryConfig `yaml:"dictionary"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// API鉴权配置
	Auth AuthConfig `yaml:"auth"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// LoadConfig 从文件加载配置
// path为空或文件不存在时回退到默认配置，环境变量优先于文件内容
func LoadConfig(configPath string) (*Config, error) {
	config := createDefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
			// 文件不存在时继续使用默认配置
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// 从环境变量覆盖配置（如果存在），避免把密钥写进配置文件
	if envKey := os.Getenv("EMBEDDING_API_KEY"); envKey != "" {
		config.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("EMBEDDING_BASE_URL"); envURL != "" {
		config.Embedding.BaseURL = envURL
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigFromFileOnly 从文件加载配置，不从环境变量覆盖
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults 补齐YAML中缺失的必需项
func applyDefaults(config *Config) {
	def := createDefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = def.Server.Address
	}
	if config.Logger.Level == "" {
		config.Logger.Level = def.Logger.Level
	}
	if config.Logger.Format == "" {
		config.Logger.Format = def.Logger.Format
	}
	if config.Embedding.Model == "" {
		config.Embedding.Model = def.Embedding.Model
	}
	if config.Embedding.Dimensions <= 0 {
		config.Embedding.Dimensions = def.Embedding.Dimensions
	}
	if config.Embedding.BaseURL == "" {
		config.Embedding.BaseURL = def.Embedding.BaseURL
	}
	if config.Embedding.TimeoutSeconds <= 0 {
		config.Embedding.TimeoutSeconds = def.Embedding.TimeoutSeconds
	}
	if config.Scoring.Weights.IsZero() {
		config.Scoring.Weights = def.Scoring.Weights
	}
}

// Validate 校验配置的合法性
func (c *Config) Validate() error {
	if err := c.Scoring.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring.weights 配置非法: %w", err)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions 必须大于0")
	}
	return nil
}

// 创建一个默认配置，用于测试环境和字段回填
func createDefaultConfig() *Config {
	config := &Config{}

	// Embedding默认配置
	config.Embedding.Model = "all-minilm-l6-v2"
	config.Embedding.Dimensions = 384
	config.Embedding.BaseURL = "http://localhost:8000/v1/embeddings"
	config.Embedding.TimeoutSeconds = 10

	// 服务器默认配置
	config.Server.Address = ":8888"

	// 评分默认权重
	config.Scoring.Weights = types.DefaultWeights()

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	// 检查文件是否已存在
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	return nil
}
