// Package config provides centralized configuration management for the
// support stats report generator. It handles loading configuration from
// multiple sources, validation, and path resolution relative to the
// executable.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SUPSTATS_* for
// namespacing:
//
//	SUPSTATS_SERVER_PORT=8080
//	SUPSTATS_LOGGING_LEVEL=info
//	SUPSTATS_REPORT_OUTPUT_DIR=/srv/reports
//
// # Path Resolution
//
// All application paths resolve relative to the executable directory,
// never the current working directory, so the binaries behave the same
// no matter where they are launched from. The one exception is the
// default report output directory, which points at the user's
// Downloads folder.
package config
