/**
 * Copyright 2020 The IcecaneDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	defaultCollation = "JSON"
	defaultLocale    = "en_US"
	defaultLogLevel  = "info"
)

// CollatorConfig defines the configuration settings for the collators.
type CollatorConfig struct {
	// Collation is the registered name of the comparator: JSON, JSON_RAW, JSON_ASCII or REVID.
	Collation string `yaml:"collation"`

	// Locale is handed to the Unicode collation service as is.
	Locale string `yaml:"locale"`

	// KeyCacheSize is the number of Unicode sort keys to cache. 0 disables the cache.
	KeyCacheSize int `yaml:"keyCacheSize"`

	LogLevel string `yaml:"logLevel"`
}

// NewDefaultCollatorConfig returns a new default collator configuration.
func NewDefaultCollatorConfig() *CollatorConfig {
	return &CollatorConfig{
		Collation: defaultCollation,
		Locale:    defaultLocale,
		LogLevel:  defaultLogLevel,
	}
}

// Validate validates a CollatorConfig and returns an error if it's invalid.
func (conf *CollatorConfig) Validate() error {
	if conf.Collation == "" {
		return fmt.Errorf("invalid collation provided in config")
	}
	if conf.Locale == "" {
		return fmt.Errorf("invalid locale provided in config")
	}
	if conf.KeyCacheSize < 0 {
		return fmt.Errorf("invalid key cache size %d provided in config", conf.KeyCacheSize)
	}
	if _, err := log.ParseLevel(conf.LogLevel); err != nil {
		return fmt.Errorf("invalid log level provided in config: %v", err)
	}
	return nil
}

// LoadFromFile loads the config from the file. It assumes that config already has the defaults.
// In the case of an error, it leaves the config untouched.
func (conf *CollatorConfig) LoadFromFile(path string) {
	log.Info(fmt.Sprintf("common::config: LoadFromFile; loading config from file %s", path))
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error(fmt.Sprintf("common::config: LoadFromFile; error reading config from file %s, error %s", path, err))
		return
	}
	fconf := CollatorConfig{}
	err = yaml.Unmarshal(data, &fconf)
	if err != nil {
		log.Error(fmt.Sprintf("common::config: LoadFromFile; error unmarshalling config from file %s, error %s", path, err))
		return
	}

	log.WithFields(log.Fields{"config": fconf}).Debug("common::config: LoadFromFile; read contents from the file")

	// populate fields
	if fconf.Collation != "" {
		conf.Collation = fconf.Collation
	}
	if fconf.Locale != "" {
		conf.Locale = fconf.Locale
	}
	if fconf.KeyCacheSize != 0 {
		conf.KeyCacheSize = fconf.KeyCacheSize
	}
	if fconf.LogLevel != "" {
		conf.LogLevel = fconf.LogLevel
	}
}
