package config

import (
	"fmt"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Session SessionConfig `mapstructure:"session"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// OAuthConfig GitHub OAuth配置
type OAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	// BaseURL 默认 https://github.com/login/oauth, 测试时可覆盖
	BaseURL string `mapstructure:"base_url"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Secret string `mapstructure:"secret"`  // JWT签名密钥
	AESKey string `mapstructure:"aes_key"` // Token落盘加密密钥(16/24/32字节)
	Expire int    `mapstructure:"expire"`  // 会话有效期, 秒
	GCCron string `mapstructure:"gc_cron"` // 过期会话清理cron表达式
}

// ChatConfig AI对话服务配置
type ChatConfig struct {
	Endpoint string `mapstructure:"endpoint"` // 外部AI分析服务地址
	Timeout  int    `mapstructure:"timeout"`  // 秒
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"` // console, json
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}
