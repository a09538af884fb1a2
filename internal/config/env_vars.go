package config

import "os"

const (
	hostEnvVar     = "HOST"
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetHost() string {
	return GetEnv(hostEnvVar, "0.0.0.0")
}

func (EnvVars) GetPort() string {
	return GetEnv(portEnvVar, "3000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Augment OAuth Service")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
