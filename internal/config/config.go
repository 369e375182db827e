package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	OpenAI     ModelConfig      `mapstructure:"openai"`
	USDA       USDAConfig       `mapstructure:"usda"`
	GooglePlay GooglePlayConfig `mapstructure:"google_play"`
	Scans      ScanConfig       `mapstructure:"scans"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

type ModelConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type GooglePlayConfig struct {
	PackageName        string `mapstructure:"package_name"`
	ServiceAccountFile string `mapstructure:"service_account_file"`
}

// ScanConfig 扫描计量配置：免费额度上限 + 补给周期
// 进程启动时读取一次，之后只读
type ScanConfig struct {
	MaxFreeScans           int `mapstructure:"max_free_scans"`
	ReplenishIntervalHours int `mapstructure:"replenish_interval_hours"`
}

// LoadConfig 读取配置文件
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")   // 文件类型
	viper.AddConfigPath(".")      // 查找路径：根目录

	// 支持环境变量覆盖 (例如在 Docker 中)
	// 比如设置 ICALORIE_USDA_API_KEY 可以覆盖 yaml 里的值
	viper.SetEnvPrefix("ICALORIE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}
