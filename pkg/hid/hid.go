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
	"io"

	"github.com/sstallion/go-hid"
)

// Source provides raw HID input reports. The tracking server only needs
// reads, writes to the device are feature reports handled elsewhere.
type Source interface {
	io.Closer
	// ReadReport blocks until one input report is available and copies it
	// into buf, returning its length.
	ReadReport(buf []byte) (int, error)
}

// Info identifies an opened HID interface.
type Info struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	Product   string
}

// Device is a Source backed by a real hidapi handle.
type Device struct {
	handle *hid.Device
	info   Info
}

var _ Source = &Device{}

func (d *Device) Info() Info {
	return d.info
}

func (d *Device) ReadReport(buf []byte) (int, error) {
	return d.handle.Read(buf)
}

func (d *Device) Close() error {
	return d.handle.Close()
}
