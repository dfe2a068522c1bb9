package cmdcommon

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "JAMDECK"

// EnvConfig holds the defaults of every subcommand. Flags given on the
// command line take precedence.
type EnvConfig struct {
	Workers        int    `split_words:"true" default:"1"`
	Strict         bool   `split_words:"true" default:"true"`
	LogFile        string `split_words:"true"`
	ListenHost     string `split_words:"true" default:"localhost"`
	ListenPort     int    `split_words:"true" default:"8420"`
	MaxConnections int    `split_words:"true" default:"64"`
	ServerURL      string `split_words:"true" default:"http://localhost:8420"`
}

// LoadEnvConfig loads the dotenv file if it exists, then reads the
// JAMDECK_* variables.
func LoadEnvConfig(configFile string) (*EnvConfig, error) {
	if configFile != "" {
		err := godotenv.Load(configFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var c EnvConfig
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
