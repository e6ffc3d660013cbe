// Package config collects every runtime knob of the service in one place.
// All values come from environment variables so the service can be
// configured the same way in docker-compose, CI and local shells.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration of the service and its tools.
type Config struct {
	Port       int
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	GinLogging bool
}

// Load reads the configuration from the environment.
//
// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_LOGGING=off go run main.go
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 8080)
	v.SetDefault("DBHOST", "localhost:3306")
	v.SetDefault("DBUSER", "root")
	v.SetDefault("DBPWD", "")
	v.SetDefault("DBNAME", "test")
	v.SetDefault("GIN_LOGGING", "on")
	return Config{
		Port:       v.GetInt("PORT"),
		DBHost:     v.GetString("DBHOST"),
		DBUser:     v.GetString("DBUSER"),
		DBPassword: v.GetString("DBPWD"),
		DBName:     v.GetString("DBNAME"),
		GinLogging: !strings.EqualFold(v.GetString("GIN_LOGGING"), "off"),
	}
}

// DSN renders the MySQL data source name. parseTime makes the driver scan
// DATETIME columns into time.Time.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}
