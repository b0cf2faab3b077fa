package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FOLIO"

// envKeys lists the viper keys read from FOLIO_<KEY> variables.
var envKeys = []string{
	"endpoint_addr_http",
	"database_dsn",
	"secret_key",
	"signing_algorithm",
	"access_token_ttl",
	"refresh_token_ttl",
	"bcrypt_cost",
	"read_timeout",
	"write_timeout",
	"idle_timeout",
	"shutdown_timeout",
	"log_format",
	"log_level",
	"revocation_backend",
	"redis_addr",
	"redis_password",
	"redis_db",
	"s3_root_user",
	"s3_root_password",
	"s3_bucket",
	"s3_region",
	"s3_base_endpoint",
	"s3_public_base_url",
	"otlp_endpoint",
	"service_name",
}

// envFilePath returns FOLIO_ENV_FILE or ".env".
func envFilePath() string {
	if p := os.Getenv(envPrefix + "_ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// parseEnv overlays FOLIO_* settings. Values from the dotenv file act as
// defaults; real environment variables win over them. A missing dotenv
// file is not an error.
func parseEnv(config *Config, envFile string) error {
	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := env.BindEnv(key); err != nil {
			return err
		}
	}

	file := viper.New()
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
		for k, val := range fileVars {
			if key, ok := strings.CutPrefix(k, envPrefix+"_"); ok {
				file.Set(strings.ToLower(key), val)
			}
		}
	}

	source := func(key string) *viper.Viper {
		if env.IsSet(key) {
			return env
		}
		if file.IsSet(key) {
			return file
		}
		return nil
	}
	str := func(dst *string, key string) {
		if v := source(key); v != nil {
			*dst = v.GetString(key)
		}
	}
	dur := func(dst *time.Duration, key string) {
		if v := source(key); v != nil {
			*dst = v.GetDuration(key)
		}
	}
	num := func(dst *int, key string) {
		if v := source(key); v != nil {
			*dst = v.GetInt(key)
		}
	}

	str(&config.EndpointAddrHTTP, "endpoint_addr_http")
	str(&config.DatabaseDSN, "database_dsn")
	str(&config.SecretKey, "secret_key")
	str(&config.SigningAlgorithm, "signing_algorithm")
	dur(&config.AccessTokenValidityDuration, "access_token_ttl")
	dur(&config.RefreshTokenValidityDuration, "refresh_token_ttl")
	num(&config.BcryptCost, "bcrypt_cost")
	dur(&config.ReadTimeout, "read_timeout")
	dur(&config.WriteTimeout, "write_timeout")
	dur(&config.IdleTimeout, "idle_timeout")
	dur(&config.ShutdownTimeout, "shutdown_timeout")
	str(&config.LogFormat, "log_format")
	str(&config.LogLevel, "log_level")
	str(&config.RevocationBackend, "revocation_backend")
	str(&config.RedisAddr, "redis_addr")
	str(&config.RedisPassword, "redis_password")
	num(&config.RedisDB, "redis_db")
	str(&config.S3RootUser, "s3_root_user")
	str(&config.S3RootPassword, "s3_root_password")
	str(&config.S3Bucket, "s3_bucket")
	str(&config.S3Region, "s3_region")
	str(&config.S3BaseEndpoint, "s3_base_endpoint")
	str(&config.S3PublicBaseURL, "s3_public_base_url")
	str(&config.OTLPEndpoint, "otlp_endpoint")
	str(&config.ServiceName, "service_name")

	return nil
}
