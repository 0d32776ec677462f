// Package appconf holds application-level configuration: the runtime
// environment and the knobs resolved from flags, .env files, and the process
// environment.
package appconf

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Environment int

const (
	Test Environment = iota
	Development
	Production
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int

	// NATSURL is the push telemetry feed; empty disables the subscription.
	NATSURL string
	// GtfsRtURL is the polled GTFS-realtime vehicle positions fallback;
	// empty disables the poller.
	GtfsRtURL string
}

// EnvFlagToEnvironment maps the -env flag value onto an Environment.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Missing files are not an error; explicit environment variables win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// GetenvDefault returns the value of the named variable, or def when unset.
func GetenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
