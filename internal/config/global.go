package config

import (
	"fmt"
	"strings"

	"chat-service/internal/utils/runtime"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	kafkaHostFlag              = "kafka-host"
	kafkaPortFlag              = "kafka-port"
	mongoDBURIFlag             = "mongodb-uri"
	redisAddressFlag           = "redis-address"
	presenceBackendFlag        = "presence-backend"
	presenceReportScheduleFlag = "presence-report-schedule"
	jwtSecretFlag              = "jwt-secret"
	developmentFlag            = "development"
	grpcPortFlag               = "port"
	httpPortFlag               = "http-port"
)

const (
	PresenceBackendMemory = "memory"
	PresenceBackendRedis  = "redis"
)

type Config struct {
	Kafka    KafkaConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Presence PresenceConfig

	JWTSecret string

	Development bool

	GRPCPort int
	HTTPPort int
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

type RedisConfig struct {
	Address string
}

type PresenceConfig struct {
	// Backend is either "memory" (single process) or "redis" (shared between gateway replicas).
	Backend        string
	ReportSchedule string
}

func LoadGlobalConfig() (*Config, error) {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(redisAddressFlag, "localhost:6379")
	viper.SetDefault(presenceBackendFlag, PresenceBackendMemory)
	viper.SetDefault(presenceReportScheduleFlag, "@every 1m")
	viper.SetDefault(jwtSecretFlag, "")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(grpcPortFlag, 10010)
	viper.SetDefault(httpPortFlag, 8080)

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(redisAddressFlag, viper.GetString(redisAddressFlag), "Redis address, used by the redis presence backend")
	pflag.String(presenceBackendFlag, viper.GetString(presenceBackendFlag), "Presence backend (memory or redis)")
	pflag.String(presenceReportScheduleFlag, viper.GetString(presenceReportScheduleFlag), "Cron schedule of the presence report")
	pflag.String(jwtSecretFlag, viper.GetString(jwtSecretFlag), "HMAC secret used to verify access tokens")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(grpcPortFlag, viper.GetInt32(grpcPortFlag), "gRPC port")
	pflag.Int32(httpPortFlag, viper.GetInt32(httpPortFlag), "HTTP port")
	pflag.Parse()

	runtime.Must(viper.BindPFlags(pflag.CommandLine))

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(mongoDBURIFlag))
	runtime.Must(viper.BindEnv(redisAddressFlag))
	runtime.Must(viper.BindEnv(presenceBackendFlag))
	runtime.Must(viper.BindEnv(presenceReportScheduleFlag))
	runtime.Must(viper.BindEnv(jwtSecretFlag))
	runtime.Must(viper.BindEnv(developmentFlag))
	runtime.Must(viper.BindEnv(grpcPortFlag))
	runtime.Must(viper.BindEnv(httpPortFlag))

	cfg := &Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Redis: RedisConfig{
			Address: viper.GetString(redisAddressFlag),
		},
		Presence: PresenceConfig{
			Backend:        viper.GetString(presenceBackendFlag),
			ReportSchedule: viper.GetString(presenceReportScheduleFlag),
		},
		JWTSecret:   viper.GetString(jwtSecretFlag),
		Development: viper.GetBool(developmentFlag),
		GRPCPort:    int(viper.GetInt32(grpcPortFlag)),
		HTTPPort:    int(viper.GetInt32(httpPortFlag)),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Presence.Backend {
	case PresenceBackendMemory, PresenceBackendRedis:
	default:
		return fmt.Errorf("unknown presence backend %q", c.Presence.Backend)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("%s must be set", jwtSecretFlag)
	}
	return nil
}
