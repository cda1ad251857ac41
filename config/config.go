// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/cardinalhq/d2txt/pkg/d2txt"
)

// Config aggregates configuration for the d2txt command.
type Config struct {
	Validate  ValidateConfig  `mapstructure:"validate"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ValidateConfig controls file metadata validation.
type ValidateConfig struct {
	MaxFileSize int64  `mapstructure:"max_file_size"`
	Extension   string `mapstructure:"extension"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	OTLP        bool   `mapstructure:"otlp"`
	ServiceName string `mapstructure:"service_name"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Validate: ValidateConfig{
			MaxFileSize: d2txt.DefaultMaxFileSize,
			Extension:   d2txt.DefaultExtension,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "d2txt",
		},
	}
}

// Load reads configuration from an optional d2txt.yaml in the working
// directory and from environment variables. Environment variables use the
// prefix "D2TXT" and the dot character in keys is replaced by an underscore.
// For example, "validate.max_file_size" becomes "D2TXT_VALIDATE_MAX_FILE_SIZE".
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("d2txt")
	v.AddConfigPath(".")
	v.SetEnvPrefix("D2TXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidatorOptions converts the validate section to d2txt options.
func (c *Config) ValidatorOptions() []d2txt.ValidatorOption {
	return []d2txt.ValidatorOption{
		d2txt.WithMaxFileSize(c.Validate.MaxFileSize),
		d2txt.WithExtension(c.Validate.Extension),
	}
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
