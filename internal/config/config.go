package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type GrowthConfig struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	GrowthDB        `yaml:"growth_db"`
	LogConfig       `yaml:"log_config"`
	IdentityService `yaml:"identity-service"`
	KafkaService    `yaml:"kafka-service"`
	FraudGuard      `yaml:"fraud_guard"`
	Scoring         `yaml:"scoring"`
	Promotion       `yaml:"promotion"`
	Showcase        `yaml:"showcase"`
	MigrationsPath  string `yaml:"migrations_path"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type GrowthDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type IdentityService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"growth-events"`
}

type FraudGuard struct {
	MaxEventsPerMinute   int           `yaml:"max_events_per_minute" env-default:"10"`
	ActivityWindow       time.Duration `yaml:"activity_window" env-default:"10m"`
	ActivityFloor        int           `yaml:"activity_floor" env-default:"8"`
	MinDistinctAddresses int           `yaml:"min_distinct_addresses" env-default:"2"`
	DedupBucket          time.Duration `yaml:"dedup_bucket" env-default:"1h"`
}

type Scoring struct {
	ViewWeight     float64       `yaml:"view_weight" env-default:"0.1"`
	ReactionWeight float64       `yaml:"reaction_weight" env-default:"2.0"`
	CommentWeight  float64       `yaml:"comment_weight" env-default:"3.0"`
	BatchWindow    time.Duration `yaml:"batch_window" env-default:"15m"`
	BatchSpec      string        `yaml:"batch_spec" env-default:"*/10 * * * *"`
}

type Promotion struct {
	ShareThreshold int           `yaml:"share_threshold" env-default:"5"`
	ExpirySweep    time.Duration `yaml:"expiry_sweep" env-default:"1m"`
}

type Showcase struct {
	RefreshSpec  string `yaml:"refresh_spec" env-default:"@hourly"`
	EligibleTier string `yaml:"eligible_tier" env-default:"PRO"`
	MaxEntries   int    `yaml:"max_entries" env-default:"50"`
}

func MustLoad() *GrowthConfig {

	// Processing env config variable and file
	configPath := os.Getenv("GROWTH_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("GROWTH_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg GrowthConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
