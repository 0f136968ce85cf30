package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"edupay/internal/domain/entities"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds every tunable of the payment service. It is loaded once at
// startup and injected into the use cases; nothing reads the environment at
// request time.
type Config struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Payments PaymentsConfig `mapstructure:"payments"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Services ServicesConfig `mapstructure:"services"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type PaymentsConfig struct {
	FeeRate             decimal.Decimal `mapstructure:"-"`
	MinAmount           decimal.Decimal `mapstructure:"-"`
	MaxAmount           decimal.Decimal `mapstructure:"-"`
	InstructorFeeAmount decimal.Decimal `mapstructure:"-"`
	Currency            string          `mapstructure:"currency"`
}

type GatewayConfig struct {
	AccessToken      string        `mapstructure:"access_token"`
	Mock             bool          `mapstructure:"mock"`
	WebhookSecret    string        `mapstructure:"webhook_secret"`
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type ServicesConfig struct {
	EnrollmentURL string        `mapstructure:"enrollment_url"`
	CourseURL     string        `mapstructure:"course_url"`
	ServiceToken  string        `mapstructure:"service_token"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

type DynamoDBConfig struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKeyID   string `mapstructure:"access_key_id"`
	SecretKey     string `mapstructure:"secret_access_key"`
	PaymentsTable string `mapstructure:"payments_table"`
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	OwnerTTL time.Duration `mapstructure:"owner_ttl"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// env var -> viper key
var envBindings = map[string]string{
	"port":                       "PORT",
	"log_level":                  "LOG_LEVEL",
	"payments.fee_rate":          "PAYMENT_FEE_RATE",
	"payments.min_amount":        "PAYMENT_MIN_AMOUNT",
	"payments.max_amount":        "PAYMENT_MAX_AMOUNT",
	"payments.instructor_fee":    "INSTRUCTOR_FEE_AMOUNT",
	"payments.currency":          "PAYMENT_CURRENCY",
	"gateway.access_token":       "MERCADOPAGO_ACCESS_TOKEN",
	"gateway.mock":               "PAYMENT_GATEWAY_MOCK",
	"gateway.webhook_secret":     "WEBHOOK_SECRET",
	"gateway.webhook_tolerance":  "WEBHOOK_TOLERANCE",
	"gateway.timeout":            "GATEWAY_TIMEOUT",
	"services.enrollment_url":    "ENROLLMENT_SERVICE_URL",
	"services.course_url":        "COURSE_SERVICE_URL",
	"services.service_token":     "SERVICE_AUTH_TOKEN",
	"services.timeout":           "COLLABORATOR_TIMEOUT",
	"services.max_retries":       "COLLABORATOR_MAX_RETRIES",
	"dynamodb.region":            "AWS_REGION",
	"dynamodb.endpoint":          "DYNAMODB_ENDPOINT",
	"dynamodb.access_key_id":     "AWS_ACCESS_KEY_ID",
	"dynamodb.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"dynamodb.payments_table":    "PAYMENTS_TABLE",
	"redis.url":                  "REDIS_URL",
	"redis.owner_ttl":            "OWNER_CACHE_TTL",
	"auth.jwt_secret":            "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("payments.fee_rate", entities.DefaultFeeRate.String())
	v.SetDefault("payments.min_amount", "0.50")
	v.SetDefault("payments.max_amount", "999999.99")
	v.SetDefault("payments.instructor_fee", "49.00")
	v.SetDefault("payments.currency", "usd")
	v.SetDefault("gateway.mock", false)
	v.SetDefault("gateway.webhook_tolerance", 5*time.Minute)
	v.SetDefault("gateway.timeout", 5*time.Second)
	v.SetDefault("services.enrollment_url", "http://course-service:3002/api")
	v.SetDefault("services.course_url", "http://course-service:3002/api")
	v.SetDefault("services.timeout", 4*time.Second)
	v.SetDefault("services.max_retries", 0)
	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.payments_table", "payments")
	v.SetDefault("redis.owner_ttl", 10*time.Minute)
}

// Load reads .env (when present), an optional config file and the process
// environment, in increasing priority.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	var err error
	if cfg.Payments.FeeRate, err = decimalKey(v, "payments.fee_rate"); err != nil {
		return nil, err
	}
	if cfg.Payments.MinAmount, err = decimalKey(v, "payments.min_amount"); err != nil {
		return nil, err
	}
	if cfg.Payments.MaxAmount, err = decimalKey(v, "payments.max_amount"); err != nil {
		return nil, err
	}
	if cfg.Payments.InstructorFeeAmount, err = decimalKey(v, "payments.instructor_fee"); err != nil {
		return nil, err
	}
	cfg.Payments.Currency = strings.ToLower(strings.TrimSpace(cfg.Payments.Currency))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decimalKey(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func (c *Config) Validate() error {
	p := c.Payments
	if p.FeeRate.IsNegative() || p.FeeRate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("payments.fee_rate must be within [0, 1]")
	}
	if !p.MinAmount.IsPositive() || p.MaxAmount.LessThan(p.MinAmount) {
		return errors.New("payments amount bounds are inconsistent")
	}
	if p.Currency == "" {
		return errors.New("payments.currency is required")
	}
	if c.Services.Timeout <= 0 {
		return errors.New("services.timeout must be positive")
	}
	if c.Services.MaxRetries < 0 {
		return errors.New("services.max_retries must not be negative")
	}
	return nil
}
