package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		LogFile   string `env:"APP_LOG_FILE" env-default:"instafeed.log"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Storage struct {
		Driver     string `env:"STORAGE_DRIVER" env-default:"sqlite" env-description:"sqlite, postgres or memory"`
		SqlitePath string `env:"STORAGE_SQLITE_PATH" env-default:"instafeed.db"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		BotToken string `env:"TELEGRAM_TOKEN"`
		ChatID   int64  `env:"TELEGRAM_CHAT"`
	}
	Feed struct {
		LoadDelay      time.Duration `env:"FEED_LOAD_DELAY" env-default:"1s"`
		SubmitDelay    time.Duration `env:"FEED_SUBMIT_DELAY" env-default:"1500ms"`
		SearchDebounce time.Duration `env:"FEED_SEARCH_DEBOUNCE" env-default:"300ms"`
		CaptionLimit   int           `env:"FEED_CAPTION_LIMIT" env-default:"100"`
	}
	Layout struct {
		TabletColumns       int `env:"LAYOUT_TABLET_COLUMNS" env-default:"80"`
		DesktopColumns      int `env:"LAYOUT_DESKTOP_COLUMNS" env-default:"120"`
		LargeDesktopColumns int `env:"LAYOUT_LARGE_DESKTOP_COLUMNS" env-default:"160"`
	}
	Images struct {
		Fetch        bool          `env:"IMAGES_FETCH" env-default:"true"`
		Timeout      time.Duration `env:"IMAGES_TIMEOUT" env-default:"10s"`
		PerHostRate  int           `env:"IMAGES_PER_HOST_RATE" env-default:"4"`
		PerHostBurst int           `env:"IMAGES_PER_HOST_BURST" env-default:"2"`
		Workers      int           `env:"IMAGES_WORKERS" env-default:"4"`
	}
}

// GetDSN returns the postgres connection string used by goose and the migrate tool.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// Default returns a configuration with env defaults applied, pinned to the
// memory driver and with image fetching off.
func Default() *Config {
	c := &Config{}
	_ = cleanenv.ReadEnv(c)
	c.Storage.Driver = "memory"
	c.Images.Fetch = false
	return c
}
