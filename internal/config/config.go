// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KafkaConfig 存储 Kafka 相关的配置。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// RecommendConfig 存储推荐引擎的部署级可调参数。
// 相似度权重与学习率属于算法本身，固定在 service 包内，不在此暴露。
type RecommendConfig struct {
	// MaxRadiusKM 候选集的地理半径（公里），通过边界盒近似。
	MaxRadiusKM float64 `mapstructure:"max_radius_km"`
	// EpsilonRandom 推荐结果中每个位置被随机候选替换的概率。
	EpsilonRandom float64 `mapstructure:"epsilon_random"`
	// EpsilonIgnoreMetric 单次推荐中随机屏蔽一个相似度维度的概率。
	EpsilonIgnoreMetric float64 `mapstructure:"epsilon_ignore_metric"`
	// ImageFilterMinMeals 菜品总量达到该值后，候选集只保留有图片的菜品。
	ImageFilterMinMeals int `mapstructure:"image_filter_min_meals"`
	// FeatureCacheTTLSeconds 菜品特征行在 Redis 中的缓存时长（秒）。
	FeatureCacheTTLSeconds int `mapstructure:"feature_cache_ttl_seconds"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 推荐引擎参数的默认值与线上算法保持一致
	viper.SetDefault("recommend.max_radius_km", 25.0)
	viper.SetDefault("recommend.epsilon_random", 0.1)
	viper.SetDefault("recommend.epsilon_ignore_metric", 0.1)
	viper.SetDefault("recommend.image_filter_min_meals", 200)
	viper.SetDefault("recommend.feature_cache_ttl_seconds", 3600)

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
