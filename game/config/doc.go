// Package config manages puzzle configuration files.
//
// Configurations live as JSON files in a configs directory, addressed by
// config ID (the filename without the .json extension). The Manager caches
// parsed configurations and validates everything it loads or saves, so the
// rest of the system only ever sees configurations the solver can run.
package config
