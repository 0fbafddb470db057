package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; copy events are then kept in memory.
	DefaultDatabaseURL = ""

	// DefaultSentryEnvironment tags Sentry events when SENTRY_ENVIRONMENT is unset.
	DefaultSentryEnvironment = "production"

	// DefaultFetchTimeout of zero applies no timeout to raw content retrieval.
	DefaultFetchTimeout = time.Duration(0)

	// DefaultTransition is the tab show/hide duration.
	DefaultTransition = 200 * time.Millisecond

	// DefaultRateLimitRPS and DefaultRateLimitBurst bound API calls per client.
	// A zero RPS disables rate limiting.
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 20

	// DefaultTrustedProxies is empty; X-Forwarded-For is then ignored.
	DefaultTrustedProxies = ""

	// DefaultLogFile receives logs from the terminal UI, which owns stdout.
	DefaultLogFile = "sqlgallery.log"
)
