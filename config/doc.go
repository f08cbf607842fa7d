// Package config loads toolguard settings from the environment.
//
// Variables may come from the process environment or a .env file. Values
// already set in the process win over the file.
//
//	SERVICE_NAME, SERVICE_VERSION
//	REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL, REDIS_CONNECT_TIMEOUT
//	TRACING_ENABLED, TRACING_EXPORTER, TRACING_SAMPLE_PCT
//	METRICS_ENABLED, METRICS_EXPORTER
//	LOG_ENABLED, LOG_LEVEL
//
// REDIS_URL may reference other variables as ${NAME}, so a password can be
// kept in its own variable. A reference to an unset variable is an error.
package config
