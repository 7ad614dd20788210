package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"petclinic/internal/hearing"
)

// EnvPrefix namespaces environment overrides: server.addr is PETCLINIC_SERVER_ADDR.
const EnvPrefix = "PETCLINIC"

// profiles lists every value the word producer factory accepts, the empty
// default included.
func profiles() []any {
	accepted := []any{hearing.ProfileDefault}
	for _, p := range hearing.Profiles() {
		accepted = append(accepted, p)
	}
	return accepted
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the complete runtime configuration.
type Config struct {
	Server  Server      `mapstructure:"server"`
	Log     Log         `mapstructure:"log"`
	Storage Storage     `mapstructure:"storage"`
	Redis   RedisConfig `mapstructure:"redis"`
	Profile string      `mapstructure:"profile"`
	Say     Say         `mapstructure:"say"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Storage selects the owner and vet stores.
type Storage struct {
	Driver     string `mapstructure:"driver"`
	DSN        string `mapstructure:"dsn"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Seed       bool   `mapstructure:"seed"`
}

// RedisConfig configures the optional vet cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	VetsTTL      time.Duration `mapstructure:"vets_ttl"`
}

// Say carries the word for the externalized profile.
type Say struct {
	Word string `mapstructure:"word"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.sqlite_path", "petclinic.db")
	v.SetDefault("storage.seed", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.vets_ttl", 10*time.Minute)
	v.SetDefault("profile", "")
	v.SetDefault("say.word", "")
}

// Options tell Load where to look beyond defaults and the environment.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, petclinic.yaml is
	// looked up in the working directory and ./configs, and may be absent.
	ConfigFile string
	// EnvFiles are dotenv files loaded before reading the environment.
	// Missing files are skipped. Variables already set are not overridden.
	EnvFiles []string
	// Flags are bound by their dotted config key, e.g. a flag named
	// "server.addr". Only flags the user actually set take precedence.
	Flags *pflag.FlagSet
}

// Load resolves configuration with precedence flags > environment > file >
// defaults, then validates it.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("petclinic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks field constraints that viper cannot express.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Log),
		validation.Field(&c.Storage),
		validation.Field(&c.Redis),
		validation.Field(&c.Profile, validation.In(profiles()...).Error("must be one of "+strings.Join(hearing.Profiles(), ", "))),
		validation.Field(&c.Say, validation.When(c.Profile == hearing.ProfileExternalized, validation.By(requireWord))),
	)
}

func requireWord(value any) error {
	if say, _ := value.(Say); strings.TrimSpace(say.Word) == "" {
		return errors.New("say.word is required for the externalized profile")
	}
	return nil
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.ReadHeaderTimeout, validation.Min(time.Duration(0))),
		validation.Field(&s.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("json", "text")),
	)
}

func (s Storage) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(DriverMemory, DriverPostgres, DriverSQLite)),
		validation.Field(&s.DSN, validation.When(s.Driver == DriverPostgres, validation.Required)),
		validation.Field(&s.SQLitePath, validation.When(s.Driver == DriverSQLite, validation.Required)),
	)
}

func (r RedisConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PoolSize, validation.When(r.URL != "", validation.Min(1))),
		validation.Field(&r.MinIdleConns, validation.Min(0)),
		validation.Field(&r.VetsTTL, validation.Min(time.Duration(0))),
	)
}
