package config // package config loads application configuration from environment variables

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/sethvargo/go-envconfig"
)

// MinSessionSecretLen is the shortest SESSION_SECRET accepted at startup.
const MinSessionSecretLen = 32

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; defaults live in the struct tags.
type Config struct {
    Env       string `env:"APP_ENV, default=development"` // application environment (development/test/production)
    Port      string `env:"APP_PORT, default=4069"`       // HTTP port to listen on
    LogLevel  string `env:"LOG_LEVEL, default=info"`
    LogPretty bool   `env:"LOG_PRETTY, default=false"`

    DB       DBConfig
    Session  SessionConfig
    Redis    RedisConfig
    Activity ActivityConfig

    BcryptCost     int  `env:"BCRYPT_COST, default=10"` // bcrypt cost for password hashing
    MetricsEnabled bool `env:"METRICS_ENABLED, default=true"`
}

// DBConfig selects the SQL driver and its connection parameters.  DB_DRIVER
// is "mysql" for deployments and "sqlite3" for local development.
type DBConfig struct {
    Driver  string `env:"DB_DRIVER, default=mysql"`
    User    string `env:"DB_USER, default=root"`
    Pass    string `env:"DB_PASS"` // empty allowed
    Host    string `env:"DB_HOST, default=localhost"`
    Port    string `env:"DB_PORT, default=3306"`
    Name    string `env:"DB_NAME, default=cinepedia"`
    Path    string `env:"DB_PATH, default=cinepedia.db"`
    Migrate bool   `env:"DB_MIGRATE, default=true"`
}

// SessionConfig drives the signed session cookie.  Secret has no default:
// a deployment that forgets it must not start.
type SessionConfig struct {
    Secret     string        `env:"SESSION_SECRET, required"`
    TTL        time.Duration `env:"SESSION_TTL, default=24h"`
    CookieName string        `env:"SESSION_COOKIE, default=cinepedia_session"`
    Secure     bool          `env:"SESSION_SECURE, default=false"` // forced on when APP_ENV is production
}

// RedisConfig is optional.  An empty Addr disables Redis.
type RedisConfig struct {
    Addr     string `env:"REDIS_ADDR"`
    Password string `env:"REDIS_PASSWORD"`
    DB       int    `env:"REDIS_DB, default=0"`
    TLS      bool   `env:"REDIS_TLS, default=false"`
}

// ActivityConfig controls the RabbitMQ activity pipeline.  An empty URL
// disables publishing.
type ActivityConfig struct {
    URL         string `env:"RABBITMQ_URL"`
    RunConsumer bool   `env:"ACTIVITY_CONSUMER, default=false"`
    LogDir      string `env:"ACTIVITY_LOG_DIR, default=logs"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (Config, error) {
    _ = godotenv.Load() // a missing .env is fine; real env vars still apply
    return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit source of variables.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
    var cfg Config
    if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
        return Config{}, fmt.Errorf("config: %w", err)
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    // production cookies only travel over HTTPS
    if cfg.IsProduction() {
        cfg.Session.Secure = true
    }
    return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
    if len(c.Session.Secret) < MinSessionSecretLen {
        return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", MinSessionSecretLen)
    }
    switch c.DB.Driver {
    case "mysql", "sqlite3":
    default:
        return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
    }
    if c.BcryptCost < 4 || c.BcryptCost > 31 {
        return errors.New("config: BCRYPT_COST must be between 4 and 31")
    }
    if c.Session.TTL <= 0 {
        return errors.New("config: SESSION_TTL must be positive")
    }
    return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c Config) IsProduction() bool {
    switch strings.ToLower(c.Env) {
    case "prod", "production":
        return true
    }
    return false
}
