package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Token secrets
	JWTSecret string `yaml:"JWT_SECRET"`
	QRSecret  string `yaml:"QR_SECRET"`

	// Ordering
	TaxRateBps         string `yaml:"TAX_RATE_BPS"`
	WaiterCallCooldown string `yaml:"WAITER_CALL_COOLDOWN_SECONDS"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    bool   `yaml:"IsProd"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml once. A missing file is not fatal; values
// can come from the environment instead.
func LoadConfig() {
	configOnce.Do(func() {
		file, err := os.ReadFile("config.yaml")
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
			return
		}

		err = yaml.Unmarshal(file, &config)
		if err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
			return
		}
	})
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetConfig returns the value for key. An environment variable of the same
// name wins over the file.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "QR_SECRET":
		return config.QRSecret
	case "TAX_RATE_BPS":
		return config.TaxRateBps
	case "WAITER_CALL_COOLDOWN_SECONDS":
		return config.WaiterCallCooldown
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return config.RedisDB
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "CLIENT_KEY":
		return config.ClientKey
	case "SERVER_KEY":
		return config.ServerKey
	case "IsProd":
		return getBoolString(config.IsProd)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfigInt parses an integer setting, falling back to def when the
// value is missing or malformed.
func GetConfigInt(key string, def int) int {
	v := GetConfig(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s: %q\n", key, v)
		return def
	}
	return n
}
