/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sigs.k8s.io/yaml"

	"github.com/vrtoybox/go-nolo/pkg/btea"
)

type HIDConfig struct {
	VendorID  uint16 `json:"vendor_id,omitempty"`
	ProductID uint16 `json:"product_id,omitempty"`
	Product   string `json:"product,omitempty"`
}

type ApiConfig struct {
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
}

type Config struct {
	LogLevel   string   `json:"log_level,omitempty"`
	*HIDConfig `json:"hid,omitempty"`
	*ApiConfig `json:"api,omitempty"`
	// CipherKey is four 32-bit hex words. Only override for fixture captures
	// encrypted with a non-stock key.
	CipherKey []string `json:"cipher_key,omitempty"`
	DBPath    string   `json:"db_path,omitempty"`
	filepath  string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists, otherwise the defaults stay as is.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Key parses the configured cipher key words into a btea key.
func (c *Config) Key() (btea.Key, error) {
	var key btea.Key
	if len(c.CipherKey) != len(key) {
		return key, ErrBadCipherKey{What: fmt.Sprintf("expected %d words, got %d", len(key), len(c.CipherKey))}
	}
	for i, word := range c.CipherKey {
		v, err := strconv.ParseUint(word, 16, 32)
		if err != nil {
			return key, ErrBadCipherKey{What: fmt.Sprintf("word %d: %s", i, word)}
		}
		key[i] = uint32(v)
	}
	return key, nil
}

func (c *Config) ApiURL() string {
	return fmt.Sprintf("http://%s:%d/api", c.ApiConfig.Address, c.ApiConfig.Port)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, StateFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		HIDConfig: &HIDConfig{
			VendorID:  DefaultVendorID,
			ProductID: DefaultProductID,
			Product:   DefaultProduct,
		},
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		CipherKey: DefaultCipherKey,
		DBPath:    DefaultDBPath(),
		filepath:  DefaultConfigPath(),
	}
}
