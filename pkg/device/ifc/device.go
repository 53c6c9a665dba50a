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

package ifc

import (
	"time"

	"github.com/vrtoybox/go-nolo/pkg/device"
	"github.com/vrtoybox/go-nolo/pkg/layers"
)

type System interface {
	Dispatch(report *layers.NoloReportLayer, now time.Time) error
	Recenter()

	Snapshots() []device.Snapshot
	Snapshot(role string) (device.Snapshot, error)

	SetCalibration(role string, cal device.Calibration) error
	Calibration(role string) (device.Calibration, error)
}
