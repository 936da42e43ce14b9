package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"prodrecon/internal/reconcile/model"
)

type Config struct {
	Host             string   `yaml:"host" env:"HOST" env-default:"127.0.0.1"`
	Port             int      `yaml:"port" env:"PORT" env-default:"8082"`
	AllowOrigins     []string `yaml:"allow_origins" env:"ALLOW_ORIGINS" env-default:"*" env-separator:","`
	LogLevel         string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFile          string   `yaml:"log_file" env:"LOG_FILE" env-default:"logs/prodrecon.log"`
	MaxUploadMB      int      `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB" env-default:"256"`
	SessionCacheSize int      `yaml:"session_cache_size" env:"SESSION_CACHE_SIZE" env-default:"32"`

	Tolerances Tolerances `yaml:"tolerances"`
}

// Tolerances — пороги по умолчанию; форма запроса может их переопределить.
type Tolerances struct {
	WasteAllowance      float64 `yaml:"waste_allowance" env:"WASTE_ALLOWANCE" env-default:"0.03"`
	ShortfallFactor     float64 `yaml:"shortfall_factor" env:"SHORTFALL_FACTOR" env-default:"0.95"`
	TimeDeadBand        float64 `yaml:"time_dead_band" env:"TIME_DEAD_BAND" env-default:"0.05"`
	VisibilityFloorPct  float64 `yaml:"visibility_floor_pct" env:"VISIBILITY_FLOOR_PCT" env-default:"0"`
	ProductionTolerance float64 `yaml:"production_tolerance" env:"PRODUCTION_TOLERANCE" env-default:"0.05"`
}

// Load читает YAML из CONFIG_PATH (если задан), затем переменные окружения.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Params — пороги как параметры движка.
func (c Config) Params() model.Params {
	return model.Params{
		WasteAllowance:      c.Tolerances.WasteAllowance,
		ShortfallFactor:     c.Tolerances.ShortfallFactor,
		TimeDeadBand:        c.Tolerances.TimeDeadBand,
		VisibilityFloorPct:  c.Tolerances.VisibilityFloorPct,
		ProductionTolerance: c.Tolerances.ProductionTolerance,
	}
}
