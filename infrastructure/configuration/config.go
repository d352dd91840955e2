package configuration

import (
	"fmt"
	"os"
	"strconv"

	"streamhaven/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	Playback    Playback    `json:"playback"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

// Playback holds grant-signing configuration. The free-episode threshold is a
// policy constant in code, deliberately not configurable here.
type Playback struct {
	SigningSecret   string `json:"signingSecret"`
	StreamBaseURL   string `json:"streamBaseURL"`
	AssetOriginURL  string `json:"assetOriginURL"`
	GrantTTLSeconds int    `json:"grantTTLSeconds"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
}

type ServiceBus struct {
	ConnectionString string `json:"connectionString"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initPlayback(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error if desired
			logger.GetLogger().Warn("Config file not found")
		} else {
			// Config file was found but another error was produced
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	// Optional MSSQL config via environment variables (for Azure SQL in production)
	if C.Database.Mssql.Name == "" {
		if v := os.Getenv("MSSQL_DB_NAME"); v != "" {
			C.Database.Mssql.Name = v
		}
	}
	if C.Database.Mssql.Host == "" {
		if v := os.Getenv("MSSQL_HOST"); v != "" {
			C.Database.Mssql.Host = v
		}
	}
	if C.Database.Mssql.User == "" {
		if v := os.Getenv("MSSQL_USER"); v != "" {
			C.Database.Mssql.User = v
		}
	}
	if C.Database.Mssql.Password == "" {
		if v := os.Getenv("MSSQL_PASSWORD"); v != "" {
			C.Database.Mssql.Password = v
		}
	}
	if C.Database.Mssql.Port == "" {
		if v := os.Getenv("MSSQL_PORT"); v != "" {
			C.Database.Mssql.Port = v
		} else {
			C.Database.Mssql.Port = "1433"
		}
	}
	if C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = "localhost"
	}
}

func initApp(C *Config) {
	// Prefer SECRET_KEY from environment for JWT verification; overrides config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	// Allow overriding TLS settings via env variables (both enable and disable)
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initPlayback(C *Config) {
	if v := os.Getenv("PLAYBACK_SIGNING_SECRET"); v != "" {
		C.Playback.SigningSecret = v
	}
	if v := os.Getenv("STREAM_BASE_URL"); v != "" {
		C.Playback.StreamBaseURL = v
	}
	if C.Playback.StreamBaseURL == "" {
		C.Playback.StreamBaseURL = "http://localhost:10001"
	}
	if v := os.Getenv("ASSET_ORIGIN_URL"); v != "" {
		C.Playback.AssetOriginURL = v
	}
	if C.Playback.AssetOriginURL == "" {
		C.Playback.AssetOriginURL = "http://localhost:9000/assets"
	}
	// Grant validity is fixed at 300 seconds unless explicitly overridden for
	// local testing. A grant outlives a mid-stream subscription change for at
	// most this window.
	if C.Playback.GrantTTLSeconds == 0 {
		C.Playback.GrantTTLSeconds = 300
	}
	if C.Playback.SigningSecret == "" {
		logger.GetLogger().Warn("Playback.SigningSecret not set; signed URLs will not be secure. Provide PLAYBACK_SIGNING_SECRET via environment.")
	}
}
