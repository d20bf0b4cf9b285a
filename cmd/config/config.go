// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/xataio/holocron/pkg/pipeline"
)

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
		viper.SetConfigType(filepath.Ext(file)[1:])
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func LogLevel() string {
	switch {
	case viper.GetString("log_level") != "":
		// yaml config
		return viper.GetString("log_level")
	default:
		// env config or CLI argument (with default value)
		return viper.GetString("HOLOCRON_LOG_LEVEL")
	}
}

func ParsePipelineConfig() (*pipeline.Config, error) {
	cfgFile := viper.GetViper().ConfigFileUsed()
	switch ext := filepath.Ext(cfgFile); ext {
	case ".yml", ".yaml":
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, err
		}
		return yamlCfg.toPipelineConfig()
	default:
		return envConfigToPipelineConfig()
	}
}
