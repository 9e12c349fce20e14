// This file is part of Lockstep.
//
// Lockstep is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lockstep is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lockstep.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/jetsetilly/lockstep/paths"
)

// the name of the file containing environment variable definitions
const dotEnv = ".env"

// config is the part of the configuration that comes from the environment.
// values in the environment override the preferences file but are
// overridden by the command line.
type config struct {
	// preference overrides in the same format as the -prefs flag
	Prefs string `env:"LOCKSTEP_PREFS"`

	// echo the log to stderr
	Log bool `env:"LOCKSTEP_LOG"`

	// default host for every mode
	Host string `env:"LOCKSTEP_HOST" envDefault:"sim"`

	// replaces the default resource directory
	Resources string `env:"LOCKSTEP_RESOURCES"`
}

// loadEnv loads a .env file. A missing file is not an error. Variables
// already in the environment are not replaced.
func loadEnv(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: %s: %w", filename, err)
	}
	return nil
}

// loadConfig reads the .env file in the working directory and then the .env
// file in the resource directory. The working directory has priority
// because godotenv never overwrites a variable.
//
// The resource directory is decided by the first file so the environment
// is parsed twice.
func loadConfig() (config, error) {
	var cfg config

	if err := loadEnv(dotEnv); err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if cfg.Resources != "" {
		paths.SetBase(cfg.Resources)
	}

	pth, err := paths.ResourcePath("", dotEnv)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := loadEnv(pth); err != nil {
		return cfg, err
	}

	cfg = config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	cfg.Host = strings.ToLower(strings.TrimSpace(cfg.Host))

	return cfg, nil
}

// overrides joins the environment preferences with the command line
// preferences. later entries take precedence when the string is pushed
// onto the prefs command line stack.
func (cfg config) overrides(commandLine string) string {
	var s []string
	for _, p := range []string{cfg.Prefs, commandLine} {
		if p = strings.TrimSpace(p); p != "" {
			s = append(s, p)
		}
	}
	return strings.Join(s, "; ")
}
