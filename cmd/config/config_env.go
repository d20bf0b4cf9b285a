// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/xataio/holocron/pkg/pipeline"
	"github.com/xataio/holocron/pkg/transform"
)

func envConfigToPipelineConfig() (*pipeline.Config, error) {
	policy, err := transform.ParseReferencePolicy(viper.GetString("HOLOCRON_REFERENCE_POLICY"))
	if err != nil {
		return nil, err
	}

	return &pipeline.Config{
		MappingFile:     viper.GetString("HOLOCRON_MAPPING_FILE"),
		NoneValues:      getStringSlice("HOLOCRON_NONE_VALUES"),
		Cache:           parseCacheConfig(),
		FetchTimeout:    viper.GetDuration("HOLOCRON_FETCH_TIMEOUT"),
		ReferencePolicy: policy,
		Supplements:     parseSupplementsConfig(),
	}, nil
}

func parseCacheConfig() pipeline.CacheConfig {
	return pipeline.CacheConfig{
		Store:    pipeline.StoreType(viper.GetString("HOLOCRON_CACHE_STORE")),
		Path:     viper.GetString("HOLOCRON_CACHE_PATH"),
		RedisURL: viper.GetString("HOLOCRON_CACHE_REDIS_URL"),
		RedisKey: viper.GetString("HOLOCRON_CACHE_REDIS_KEY"),
	}
}

// parseSupplementsConfig reads one HOLOCRON_<KIND>_SUPPLEMENT_FILE variable
// per built in kind.
func parseSupplementsConfig() map[transform.Kind]string {
	var supplements map[transform.Kind]string
	for _, kind := range transform.KnownKinds {
		file := viper.GetString(supplementEnvKey(kind))
		if file == "" {
			continue
		}
		if supplements == nil {
			supplements = map[transform.Kind]string{}
		}
		supplements[kind] = file
	}
	return supplements
}

func supplementEnvKey(kind transform.Kind) string {
	return "HOLOCRON_" + strings.ToUpper(kind.String()) + "_SUPPLEMENT_FILE"
}

// getStringSlice splits the value on whitespace. Unset keys return nil.
func getStringSlice(key string) []string {
	values := viper.GetStringSlice(key)
	if len(values) == 0 {
		return nil
	}
	return values
}
