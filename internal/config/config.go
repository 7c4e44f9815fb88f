package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Artifact *artifactConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"papergen.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"PAPERGEN_ADDRESS" default:":8080"`
	MetricsAddress string `envconfig:"PAPERGEN_METRICS_ADDRESS" default:":8081"`
	BaseUrl        string `envconfig:"PAPERGEN_BASE_URL" default:"http://localhost:8080"`
	LogLevel       string `envconfig:"PAPERGEN_LOG_LEVEL" default:"info"`
	MaxUploadSize  int64  `envconfig:"PAPERGEN_MAX_UPLOAD_SIZE" default:"104857600"`
	Workers        int    `envconfig:"PAPERGEN_GENERATION_WORKERS" default:"4"`
}

type artifactConfig struct {
	OutputDir string `envconfig:"PAPERGEN_OUTPUT_DIR" default:"papers"`
	S3        s3Config
}

type s3Config struct {
	Endpoint  string `envconfig:"PAPERGEN_S3_ENDPOINT" default:""`
	AccessKey string `envconfig:"PAPERGEN_S3_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"PAPERGEN_S3_SECRET_KEY" default:""`
	Bucket    string `envconfig:"PAPERGEN_S3_BUCKET" default:"gi-papers"`
	UseSSL    bool   `envconfig:"PAPERGEN_S3_USE_SSL" default:"false"`
}

// NewDefault returns a configuration built from defaults only, ignoring the
// process environment. The database is an in-memory sqlite shared across
// connections, which is what the tests run against.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        ":8080",
			MetricsAddress: ":8081",
			BaseUrl:        "http://localhost:8080",
			LogLevel:       "info",
			MaxUploadSize:  104857600,
			Workers:        4,
		},
		Artifact: &artifactConfig{
			OutputDir: "papers",
			S3:        s3Config{Bucket: "gi-papers"},
		},
	}
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
