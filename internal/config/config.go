package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	DBUrl     string `mapstructure:"DB_URL"`
	RedisUrl  string `mapstructure:"REDIS_URL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Automatic status transition thresholds
	TransitRadiusKm   float64 `mapstructure:"TRANSIT_RADIUS_KM"`
	DeliveredRadiusKm float64 `mapstructure:"DELIVERED_RADIUS_KM"`

	// Heuristic courier speed used for arrival estimates
	AvgSpeedKmh float64 `mapstructure:"AVG_SPEED_KMH"`
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("TRANSIT_RADIUS_KM", 0.5)
	viper.SetDefault("DELIVERED_RADIUS_KM", 0.1)
	viper.SetDefault("AVG_SPEED_KMH", 30.0)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}
