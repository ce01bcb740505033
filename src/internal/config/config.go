package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs     LogsSettings     `mapstructure:"logs"`
	App      Application      `mapstructure:"app"`
	Database Database         `mapstructure:"database"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Redis    Redis            `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Admin    AdminSettings    `mapstructure:"admin"`
	Server   ServerSettings   `mapstructure:"server"`
	Session  SessionSettings  `mapstructure:"session"`
	Cache    CacheConfig      `mapstructure:"cache"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name     string `mapstructure:"name"`
	Timeout  int    `mapstructure:"timeout"`
	Version  string `mapstructure:"version"`
	HostLink string `mapstructure:"host-link"`
}

type Database struct {
	Url              string `mapstructure:"url"`
	DbName           string `mapstructure:"dbname"`
	AdminCollection  string `mapstructure:"admin-collection"`
	RecipeCollection string `mapstructure:"recipe-collection"`
	Timeout          int    `mapstructure:"timeout"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange-type"`
	RoutingKey   string `mapstructure:"routing-key"`
	Timeout      int    `mapstructure:"timeout"`
	Durable      bool   `mapstructure:"durable"`
	AutoDelete   bool   `mapstructure:"auto-delete"`
	Internal     bool   `mapstructure:"internal"`
	NoWait       bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type SecuritySettings struct {
	JwtKey        string `mapstructure:"jwt-key"`
	TokenTTLHours int    `mapstructure:"token-ttl-hours"`
}

// AdminSettings drives the bootstrap reconciler. PasswordHash takes
// precedence over Password when both are set.
type AdminSettings struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password-hash"`
}

type ServerSettings struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	ReadTimeout  int    `mapstructure:"read-timeout"`
	WriteTimeout int    `mapstructure:"write-timeout"`
	IdleTimeout  int    `mapstructure:"idle-timeout"`
}

// SessionSettings configures the client-side activity monitor.
type SessionSettings struct {
	InactivityHours      int `mapstructure:"inactivity-hours"`
	CheckIntervalSeconds int `mapstructure:"check-interval-seconds"`
}

type CacheConfig struct {
	RecipeListKey               string `mapstructure:"recipe-list-key"`
	RecipeListExpirationMinutes int    `mapstructure:"recipe-list-expiration-minutes"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey != "" {
		cfg.Security.JwtKey = jwtKey
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername != "" {
		cfg.Admin.Username = adminUsername
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword != "" {
		cfg.Admin.Password = adminPassword
	}

	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminPasswordHash != "" {
		cfg.Admin.PasswordHash = adminPasswordHash
	}

	port := os.Getenv("PORT")
	if port != "" {
		cfg.Server.Port = port
	}

	applyDefaults(cfg)

	return cfg
}

func applyDefaults(cfg *Configuration) {
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}

	if cfg.Security.TokenTTLHours <= 0 {
		cfg.Security.TokenTTLHours = 24
	}

	if cfg.Session.InactivityHours <= 0 {
		cfg.Session.InactivityHours = 24
	}

	if cfg.Session.CheckIntervalSeconds <= 0 {
		cfg.Session.CheckIntervalSeconds = 60
	}
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
