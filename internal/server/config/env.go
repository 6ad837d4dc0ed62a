package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	envGRPCAddress     = "EVENTKEEPER_GRPC_ADDRESS"
	envHTTPAddress     = "EVENTKEEPER_HTTP_ADDRESS"
	envDatabaseDSN     = "EVENTKEEPER_DATABASE_DSN"
	envSecretKey       = "EVENTKEEPER_SECRET_KEY"
	envTokenValidity   = "EVENTKEEPER_ACCESS_TOKEN_VALIDITY"
	envS3User          = "EVENTKEEPER_S3_ROOT_USER"
	envS3Password      = "EVENTKEEPER_S3_ROOT_PASSWORD"
	envS3Bucket        = "EVENTKEEPER_S3_BUCKET"
	envS3Region        = "EVENTKEEPER_S3_REGION"
	envS3Endpoint      = "EVENTKEEPER_S3_BASE_ENDPOINT"
	envS3PublicBaseURL = "EVENTKEEPER_S3_PUBLIC_BASE_URL"
	envBlobBaseURL     = "EVENTKEEPER_BLOB_BASE_URL"
	envRequestTimeout  = "EVENTKEEPER_REQUEST_TIMEOUT"
	envLogBackend      = "EVENTKEEPER_LOG_BACKEND"
)

// dotEnvFile is loaded into the environment when present. Variables already
// set in the environment win over the file.
var dotEnvFile = ".env"

// parseEnv overlays values from the environment. Durations use Go syntax
// ("30s"); malformed durations panic like every other configuration error.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			panic(err)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str(envGRPCAddress, &config.EndpointAddrGRPC)
	str(envHTTPAddress, &config.EndpointAddrHTTP)
	str(envDatabaseDSN, &config.DatabaseDSN)
	str(envSecretKey, &config.SecretKey)
	dur(envTokenValidity, &config.AccessTokenValidityDuration)
	str(envS3User, &config.S3RootUser)
	str(envS3Password, &config.S3RootPassword)
	str(envS3Bucket, &config.S3Bucket)
	str(envS3Region, &config.S3Region)
	str(envS3Endpoint, &config.S3BaseEndpoint)
	str(envS3PublicBaseURL, &config.S3PublicBaseURL)
	str(envBlobBaseURL, &config.BlobBaseURL)
	dur(envRequestTimeout, &config.RequestTimeout)
	str(envLogBackend, &config.LogBackend)
}
