// Package config loads git-pair settings with viper.
//
// Sources, highest priority first: values bound from command-line flags or
// set with Set, GIT_PAIR_* environment variables, the optional config file
// ($XDG_CONFIG_HOME/git-pair/config.yaml, ~/.config/git-pair/config.yaml or
// the file named by GIT_PAIR_CONFIG), then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyRosterFile  = "roster.file"
	KeyOutputJSON  = "output.json"
	KeyOutputColor = "output.color"
	KeyDebug       = "debug"
)

const envPrefix = "GIT_PAIR"

var v *viper.Viper

// Initialize (re)reads configuration. A missing config file is not an error.
func Initialize() error {
	v = viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// GIT_PAIR_ROSTER_FILE predates the config file.
	if err := v.BindEnv(KeyRosterFile, envPrefix+"_ROSTER_FILE"); err != nil {
		return fmt.Errorf("binding %s: %w", KeyRosterFile, err)
	}

	v.SetDefault(KeyRosterFile, "")
	v.SetDefault(KeyOutputJSON, false)
	v.SetDefault(KeyOutputColor, "auto")
	v.SetDefault(KeyDebug, false)

	if explicit := os.Getenv(envPrefix + "_CONFIG"); explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// ResetForTesting drops all loaded state. The next getter call re-initializes.
func ResetForTesting() {
	v = nil
}

func ensure() *viper.Viper {
	if v == nil {
		// Errors surface from the explicit Initialize call in the CLI.
		_ = Initialize()
	}
	return v
}

// GetString returns a string setting.
func GetString(key string) string {
	return ensure().GetString(key)
}

// GetBool returns a boolean setting.
func GetBool(key string) bool {
	return ensure().GetBool(key)
}

// Set overrides a setting for the life of the process.
func Set(key string, value any) {
	ensure().Set(key, value)
}

// BindFlag lets a command-line flag override key when the flag is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: nil flag", key)
	}
	return ensure().BindPFlag(key, flag)
}

// ConfigFileUsed returns the config file that was read, or "".
func ConfigFileUsed() string {
	return ensure().ConfigFileUsed()
}

// Dir returns the git-pair configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-pair"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "git-pair"), nil
}

// RosterPath returns the roster file location: the roster.file setting when
// present, otherwise <Dir>/roster.
func RosterPath() (string, error) {
	if p := GetString(KeyRosterFile); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "roster"), nil
}
