package environment

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// Production defines the prod environment
const Production = "prod"

// Dev defines the dev environment
const Dev = "dev"

// Environment holds the process configuration
type Environment struct {
	Environment string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	DataDir     string `mapstructure:"DATA_DIR"`
}

var Global Environment

// Initialize reads the .env file and fills Global, falling back to desktop
// defaults when no .env file is present
func Initialize() {
	data, err := godotenv.Read(".env")
	if err != nil {
		data = map[string]string{}
	}

	err = mapstructure.Decode(data, &Global)
	if err != nil {
		panic(err)
	}

	if Global.Environment == "" {
		Global.Environment = Dev
	}

	if Global.Port == "" {
		Global.Port = "8600"
	}

	if Global.DataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		Global.DataDir = filepath.Join(configDir, "coursedeck")
	}
}
