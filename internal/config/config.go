package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Validation groups the configurable validation rules for student records.
type Validation struct {
	AgeMin          int
	AgeMax          int
	UniqueStudentID bool
}

// ImportDefaults holds the substitution values applied to missing optional
// columns during bulk import.
type ImportDefaults struct {
	Age       int
	Address   string
	Section   string
	Major     string
	YearLevel string
}

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	RedisURL       string
	JWTSecret      string
	JWTTTL         time.Duration
	AdminCode      string
	Validation     Validation
	ImportDefaults ImportDefaults
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SIRA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SIRA API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "168h")
	v.SetDefault("validation.age_min", 16)
	v.SetDefault("validation.age_max", 100)
	v.SetDefault("validation.unique_student_id", true)
	v.SetDefault("import.default_age", 20)
	v.SetDefault("import.default_address", "Default Address")
	v.SetDefault("import.default_section", "A")
	v.SetDefault("import.default_major", "General")
	v.SetDefault("import.default_year_level", "1st Year")

	ttlString := v.GetString("jwt.ttl")
	if ttlString == "" {
		ttlString = "168h"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	cfg := Config{
		AppName:   v.GetString("app.name"),
		AppEnv:    v.GetString("app.env"),
		AppPort:   v.GetString("app.port"),
		RedisURL:  v.GetString("redis.url"),
		JWTSecret: v.GetString("jwt.secret"),
		JWTTTL:    ttl,
		AdminCode: v.GetString("admin.registration_code"),
		Validation: Validation{
			AgeMin:          v.GetInt("validation.age_min"),
			AgeMax:          v.GetInt("validation.age_max"),
			UniqueStudentID: v.GetBool("validation.unique_student_id"),
		},
		ImportDefaults: ImportDefaults{
			Age:       v.GetInt("import.default_age"),
			Address:   v.GetString("import.default_address"),
			Section:   v.GetString("import.default_section"),
			Major:     v.GetString("import.default_major"),
			YearLevel: v.GetString("import.default_year_level"),
		},
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AdminCode == "" {
		return Config{}, fmt.Errorf("admin registration code must be provided")
	}

	if cfg.Validation.AgeMin <= 0 || cfg.Validation.AgeMax < cfg.Validation.AgeMin {
		return Config{}, fmt.Errorf("invalid age bounds: min=%d max=%d", cfg.Validation.AgeMin, cfg.Validation.AgeMax)
	}

	return cfg, nil
}
