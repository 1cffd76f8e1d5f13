package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int
	RateLimitRPS float64 // 0 disables the limiter

	BufferPercent string // raw, parsed with the buffer-cell rules
	MinFuzzyScore float64
	SkipKeywords  []string
	Signature     string

	OrdersSheet  string
	MappingSheet string // empty = first sheet
	SaladSheet   string // empty = first sheet
}

// Load reads .env (if present), then the environment, over built-in defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Host:          v.GetString("host"),
		Port:          v.GetInt("port"),
		AllowOrigins:  splitList(v.GetString("allow_origins")),
		LogLevel:      v.GetString("log_level"),
		LogFile:       v.GetString("log_file"),
		MaxUploadMB:   v.GetInt("max_upload_mb"),
		RateLimitRPS:  v.GetFloat64("rate_limit_rps"),
		BufferPercent: v.GetString("buffer_percent"),
		MinFuzzyScore: v.GetFloat64("min_fuzzy_score"),
		SkipKeywords:  splitList(v.GetString("skip_keywords")),
		Signature:     v.GetString("signature"),
		OrdersSheet:   v.GetString("orders_sheet"),
		MappingSheet:  v.GetString("mapping_sheet"),
		SaladSheet:    v.GetString("salad_sheet"),
	}
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/vendor-orders.log")
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("rate_limit_rps", 10)

	v.SetDefault("buffer_percent", "12")
	v.SetDefault("min_fuzzy_score", 0.30)
	v.SetDefault("skip_keywords", "order value,total value,total")
	v.SetDefault("signature", "Arkoun Farms")

	v.SetDefault("orders_sheet", "Orders List")
	v.SetDefault("mapping_sheet", "")
	v.SetDefault("salad_sheet", "")
}

func validate(c Config) error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.MinFuzzyScore < 0 || c.MinFuzzyScore > 1 {
		return fmt.Errorf("MIN_FUZZY_SCORE must be within [0,1], got %v", c.MinFuzzyScore)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
