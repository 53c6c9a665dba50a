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

package device

import (
	"sync"
	"time"

	"github.com/vrtoybox/go-nolo/pkg/layers"
	"github.com/vrtoybox/go-nolo/pkg/log"
)

const (
	TrackerName         = "Nolo Tracker"
	LeftControllerName  = "Nolo Left Controller"
	RightControllerName = "Nolo Right Controller"

	// Pressing the system button twice within this window recenters all
	// devices.
	doubleClickWindow = 150 * time.Millisecond
)

// System owns the three logical devices behind one head tracker HID
// endpoint. All controller input is routed through the tracker's reports.
type System struct {
	mu sync.RWMutex

	hmdTracker      *Device
	leftController  *Device
	rightController *Device
}

func NewSystem() *System {
	return &System{
		hmdTracker:      newDevice(TrackerName, HmdTracker),
		leftController:  newDevice(LeftControllerName, LeftController),
		rightController: newDevice(RightControllerName, RightController),
	}
}

// Dispatch routes one decoded report into the devices it addresses. Report
// id 16 carries controller 0 plus a tracker sample, id 17 carries controller
// 1 plus a duplicate of the id 16 tracker sample which is skipped.
func (s *System) Dispatch(report *layers.NoloReportLayer, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch report.ReportID {
	case layers.ReportController0HMD:
		s.leftController.ApplyController(report.Controller, now)
		s.hmdTracker.ApplyTracker(report.Tracker, now)
		s.checkRecenter(s.leftController, now)
	case layers.ReportController1HMD:
		s.rightController.ApplyController(report.Controller, now)
	case layers.ReportLegacyControllerTracker, layers.ReportLegacyHMDTracker:
		return ErrLegacyFirmware{ID: uint8(report.ReportID)}
	default:
		return ErrUnknownReportID{ID: uint8(report.ReportID)}
	}
	return nil
}

// checkRecenter watches the left controller's system button for a double
// click. Caller holds the lock.
func (s *System) checkRecenter(d *Device, now time.Time) {
	if d.Role != LeftController {
		return
	}
	pressed := d.ControllerValues[SystemClick] != 0
	switch {
	case pressed && !d.systemHeld:
		d.systemHeld = true
		if !d.lastSystemRelease.IsZero() && now.Sub(d.lastSystemRelease) < doubleClickWindow {
			log.Debug("System button double click, recentering")
			s.recenterLocked()
		}
	case !pressed && d.systemHeld:
		d.systemHeld = false
		d.lastSystemRelease = now
	}
}

// Recenter resets the orientation estimate of all three devices.
func (s *System) Recenter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recenterLocked()
}

func (s *System) recenterLocked() {
	for _, d := range []*Device{s.hmdTracker, s.leftController, s.rightController} {
		d.Fusion.Reset()
		d.Pose.Orientation = d.Fusion.Orientation()
	}
}

// Snapshots returns a copy of the state of all devices, tracker first.
func (s *System) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []Snapshot{
		s.hmdTracker.snapshot(),
		s.leftController.snapshot(),
		s.rightController.snapshot(),
	}
}

// Snapshot returns a copy of the state of one device by role name.
func (s *System) Snapshot(role string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch role {
	case HmdTracker.String():
		return s.hmdTracker.snapshot(), nil
	case LeftController.String():
		return s.leftController.snapshot(), nil
	case RightController.String():
		return s.rightController.snapshot(), nil
	}
	return Snapshot{}, ErrDeviceNotFound{Role: role}
}

// SetCalibration replaces one device's IMU calibration, typically restored
// from the state store at startup.
func (s *System) SetCalibration(role string, cal Calibration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch role {
	case HmdTracker.String():
		s.hmdTracker.Imu = cal
	case LeftController.String():
		s.leftController.Imu = cal
	case RightController.String():
		s.rightController.Imu = cal
	default:
		return ErrDeviceNotFound{Role: role}
	}
	return nil
}

// Calibration returns one device's IMU calibration.
func (s *System) Calibration(role string) (Calibration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch role {
	case HmdTracker.String():
		return s.hmdTracker.Imu, nil
	case LeftController.String():
		return s.leftController.Imu, nil
	case RightController.String():
		return s.rightController.Imu, nil
	}
	return Calibration{}, ErrDeviceNotFound{Role: role}
}

// Roles lists the role names, tracker first.
func Roles() []string {
	return []string{HmdTracker.String(), LeftController.String(), RightController.String()}
}
