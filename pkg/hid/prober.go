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

package hid

import (
	"github.com/sstallion/go-hid"

	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/log"
)

// Probe opens the head tracker HID interface. All three logical devices are
// multiplexed over it.
//
// Controllers and base stations expose the same VID/PID when they are
// plugged in over USB to charge. They are matched by product string and
// ignored, charging units keep working wirelessly.
func Probe(cfg *config.Config) (*Device, error) {
	if err := hid.Init(); err != nil {
		return nil, err
	}

	var found *hid.DeviceInfo
	_ = hid.Enumerate(cfg.HIDConfig.VendorID, cfg.HIDConfig.ProductID, func(info *hid.DeviceInfo) error {
		if info.ProductStr != cfg.HIDConfig.Product {
			log.Debug("Ignoring directly connected unit: %s (%s)", info.ProductStr, info.Path)
			return nil
		}
		if found == nil {
			found = info
		}
		return nil
	})

	if found == nil {
		return nil, ErrNoDevice{
			VendorID:  cfg.HIDConfig.VendorID,
			ProductID: cfg.HIDConfig.ProductID,
			Product:   cfg.HIDConfig.Product,
		}
	}

	log.Info("Found %s at %s", found.ProductStr, found.Path)
	handle, err := hid.OpenPath(found.Path)
	if err != nil {
		return nil, err
	}

	return &Device{
		handle: handle,
		info: Info{
			Path:      found.Path,
			VendorID:  found.VendorID,
			ProductID: found.ProductID,
			Product:   found.ProductStr,
		},
	}, nil
}
