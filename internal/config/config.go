// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the user config directory.
const FileName = "prctl.yaml"

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: the running subcommand. Namespaced keys ("prs.user") win over
//     global ones ("user").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// ErrNotFound is returned by the getters when no candidate key exists.
var ErrNotFound = errors.New("config key not found")

// GetBool returns the boolean value for the given dotted key path.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: value is not a bool", key)
	}
	return b, nil
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; all are accepted.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: value is not a string", key, i)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: value is not a slice", key)
	}
}

// Load reads the YAML configuration file and replaces the global Config. The
// optional namespace is remembered for namespaced lookups.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// lookup lazily loads the file and resolves key against the global Config.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load(Config.Namespace)
	}
	return Config.get(key)
}

// get traverses the configuration tree using a dotted key path (e.g.
// "prs.filter_by"). If Namespace is set, Namespace + "." + kspec is tried
// first, then kspec itself.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		found := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				found = false
				break
			}
			if current, ok = m[part]; !ok {
				found = false
				break
			}
		}

		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %v", ErrNotFound, candidateKeys)
}

// getConfigFile returns the absolute path to the YAML config file. The
// PRCTL_CFG_FILE environment variable, when set, is the full path to the file.
// Otherwise os.UserConfigDir()/prctl.yaml is used. The file must exist and
// not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("PRCTL_CFG_FILE"); cfgPath != "" {
		fileInfo, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at PRCTL_CFG_FILE path: %s", cfgPath)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("PRCTL_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from PRCTL_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
