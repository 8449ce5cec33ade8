package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	RoutesAPIURL   string        `mapstructure:"ROUTES_API_URL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	StartLat       float64       `mapstructure:"START_LAT"`
	StartLon       float64       `mapstructure:"START_LON"`
	AvgSpeedKmh    float64       `mapstructure:"AVG_SPEED_KMH"`
	CanvasWidth    float64       `mapstructure:"CANVAS_WIDTH"`
	CanvasHeight   float64       `mapstructure:"CANVAS_HEIGHT"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("START_LAT", 4.6097)
	v.SetDefault("START_LON", -74.0817)
	v.SetDefault("AVG_SPEED_KMH", 40)
	v.SetDefault("CANVAS_WIDTH", 500)
	v.SetDefault("CANVAS_HEIGHT", 300)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
