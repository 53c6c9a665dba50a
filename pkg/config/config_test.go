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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrtoybox/go-nolo/pkg/btea"
)

func TestDefaultKey(t *testing.T) {
	cfg := NewDefaultConfig()
	key, err := cfg.Key()
	require.NoError(t, err)
	assert.Equal(t, btea.Key{0x875bcc51, 0xa7637a66, 0x50960967, 0xf8536c51}, key)
}

func TestBadKey(t *testing.T) {
	cfg := NewDefaultConfig()

	cfg.CipherKey = []string{"875bcc51"}
	_, err := cfg.Key()
	require.Error(t, err)
	assert.IsType(t, ErrBadCipherKey{}, err)

	cfg.CipherKey = []string{"875bcc51", "a7637a66", "50960967", "not-hex"}
	_, err = cfg.Key()
	require.Error(t, err)
	assert.IsType(t, ErrBadCipherKey{}, err)
}

func TestPersistLoad(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.filepath = filepath.Join(t.TempDir(), "config")
	cfg.LogLevel = "debug"
	cfg.ApiConfig.Port = 9999

	require.NoError(t, cfg.Persist(false))

	// A second persist without overwrite must refuse.
	err := cfg.Persist(false)
	require.Error(t, err)
	assert.IsType(t, ErrConfigFileExists{}, err)
	require.NoError(t, cfg.Persist(true))

	loaded := NewDefaultConfig()
	loaded.filepath = cfg.filepath
	require.NoError(t, loaded.Load())

	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, 9999, loaded.ApiConfig.Port)
	assert.Equal(t, DefaultCipherKey, loaded.CipherKey)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.filepath = filepath.Join(t.TempDir(), "missing")

	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, uint16(DefaultVendorID), cfg.HIDConfig.VendorID)
}

func TestApiURL(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8090/api", cfg.ApiURL())
}
