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
	"time"

	"github.com/vrtoybox/go-nolo/pkg/fusion"
	"github.com/vrtoybox/go-nolo/pkg/layers"
)

type Role int

const (
	HmdTracker Role = iota
	LeftController
	RightController
)

func (r Role) String() string {
	switch r {
	case HmdTracker:
		return "tracker"
	case LeftController:
		return "left"
	case RightController:
		return "right"
	}
	return "unknown"
}

// Input slots of the controller_values array.
const (
	TrackpadClick = iota
	TriggerClick
	MenuClick
	SystemClick
	SqueezeClick
	TrackpadTouch
	TrackpadXSlot
	TrackpadYSlot

	NumInputs
)

const (
	// ConnectedMagic is the wire value of the connected flag when the unit
	// is paired and alive.
	ConnectedMagic = 0xF7
	// BatteryCharging is reported while the unit charges over USB.
	BatteryCharging = 106

	// Default IMU full-scale ranges: 500 deg/s and 4 g.
	DefaultGyroRange  = 8.726646
	DefaultAccelRange = 39.226600
)

// Calibration is the persistent per-device IMU calibration.
type Calibration struct {
	AccelRange float64     `json:"accel_range"`
	GyroRange  float64     `json:"gyro_range"`
	AccelBias  layers.Vec3 `json:"accel_bias"`
	AccelScale layers.Vec3 `json:"accel_scale"`
	GyroBias   layers.Vec3 `json:"gyro_bias"`
	GyroScale  layers.Vec3 `json:"gyro_scale"`
	// Trackref is the IMU pose in tracking space.
	Trackref Pose `json:"trackref"`
}

func DefaultCalibration() Calibration {
	one := layers.Vec3{X: 1, Y: 1, Z: 1}
	return Calibration{
		AccelRange: DefaultAccelRange,
		GyroRange:  DefaultGyroRange,
		AccelScale: one,
		GyroScale:  one,
		Trackref:   Pose{Orientation: fusion.QuatIdentity},
	}
}

type Pose struct {
	Position    layers.Vec3 `json:"position"`
	Orientation fusion.Quat `json:"orientation"`
}

// Device is one logical tracked unit. All three are multiplexed over the
// head tracker's HID endpoint, the decoder only writes into the device a
// dispatch addresses.
type Device struct {
	Name   string
	Serial string
	Role   Role

	VersionID uint8
	Pose      Pose

	RawAccel     layers.Vec3
	RawGyro      layers.Vec3
	HomePosition layers.Vec3

	TwoPointDriftAngle float32

	// Button and touch state, slots indexed by the input constants.
	// Digital slots hold 0 or 1, the trackpad slots hold the raw 0-255 axis.
	ControllerValues [NumInputs]float32

	Battery   uint8
	Connected uint8
	Tick      uint8
	// Tick64 widens the 8-bit wire tick to a monotonic counter.
	Tick64 uint64

	Imu    Calibration
	Fusion *fusion.Fusion

	lastSample time.Time

	systemHeld        bool
	lastSystemRelease time.Time
}

func newDevice(name string, role Role) *Device {
	return &Device{
		Name:   name,
		Serial: name,
		Role:   role,
		Pose:   Pose{Orientation: fusion.QuatIdentity},
		Imu:    DefaultCalibration(),
		Fusion: fusion.New(),
	}
}

func (d *Device) IsConnected() bool {
	return d.Connected == ConnectedMagic
}

func (d *Device) IsCharging() bool {
	return d.Battery == BatteryCharging
}

// ApplyController overwrites the device state from a controller sub-record.
// Every slot of ControllerValues is rewritten, stale inputs never survive a
// dispatch.
func (d *Device) ApplyController(rec *layers.ControllerRecord, now time.Time) {
	d.VersionID = rec.Version
	d.Pose.Position = rec.Position
	d.RawAccel = rec.RawAccel
	d.RawGyro = rec.RawGyro

	for bit := 0; bit < len(rec.Buttons); bit++ {
		if rec.Buttons[bit] {
			d.ControllerValues[bit] = 1
		} else {
			d.ControllerValues[bit] = 0
		}
	}
	d.ControllerValues[TrackpadXSlot] = float32(rec.TouchX)
	d.ControllerValues[TrackpadYSlot] = float32(rec.TouchY)

	d.Battery = rec.Battery
	d.Connected = rec.Connected
	d.advanceTick(rec.Tick)
	d.fuse(now)
}

// ApplyTracker overwrites the device state from a tracker sub-record.
func (d *Device) ApplyTracker(rec *layers.TrackerRecord, now time.Time) {
	d.VersionID = rec.Version
	d.Pose.Position = rec.Position
	d.RawGyro = rec.RawGyro
	d.RawAccel = rec.RawAccel
	d.HomePosition = rec.HomePosition
	d.TwoPointDriftAngle = rec.TwoPointDriftAngle

	d.Connected = rec.Connected
	d.Battery = rec.Battery
	d.advanceTick(rec.Tick)
	d.fuse(now)
}

func (d *Device) advanceTick(tick uint8) {
	// The wire tick wraps at 256, the unsigned delta is still correct
	// across the wrap.
	d.Tick64 += uint64(tick - d.Tick)
	d.Tick = tick
}

func (d *Device) fuse(now time.Time) {
	if !d.lastSample.IsZero() {
		dt := now.Sub(d.lastSample).Seconds()
		d.Fusion.Update(dt, d.scaledGyro(), d.scaledAccel())
		d.Pose.Orientation = d.Fusion.Orientation()
	}
	d.lastSample = now
}

func (d *Device) scaledGyro() layers.Vec3 {
	scale := float32(d.Imu.GyroRange / 32768.0)
	return layers.Vec3{
		X: (d.RawGyro.X - d.Imu.GyroBias.X) * d.Imu.GyroScale.X * scale,
		Y: (d.RawGyro.Y - d.Imu.GyroBias.Y) * d.Imu.GyroScale.Y * scale,
		Z: (d.RawGyro.Z - d.Imu.GyroBias.Z) * d.Imu.GyroScale.Z * scale,
	}
}

func (d *Device) scaledAccel() layers.Vec3 {
	scale := float32(d.Imu.AccelRange / 32768.0)
	return layers.Vec3{
		X: (d.RawAccel.X - d.Imu.AccelBias.X) * d.Imu.AccelScale.X * scale,
		Y: (d.RawAccel.Y - d.Imu.AccelBias.Y) * d.Imu.AccelScale.Y * scale,
		Z: (d.RawAccel.Z - d.Imu.AccelBias.Z) * d.Imu.AccelScale.Z * scale,
	}
}

// TrackpadAxis converts a raw 0-255 touch axis to the -1..1 range.
func TrackpadAxis(raw float32) float32 {
	return (127.5 - raw) / 127.5
}

type Inputs struct {
	TrackpadClick bool    `json:"trackpad_click"`
	TriggerClick  bool    `json:"trigger_click"`
	MenuClick     bool    `json:"menu_click"`
	SystemClick   bool    `json:"system_click"`
	SqueezeClick  bool    `json:"squeeze_click"`
	TrackpadTouch bool    `json:"trackpad_touch"`
	TrackpadX     float32 `json:"trackpad_x"`
	TrackpadY     float32 `json:"trackpad_y"`
}

func (d *Device) inputs() Inputs {
	return Inputs{
		TrackpadClick: d.ControllerValues[TrackpadClick] != 0,
		TriggerClick:  d.ControllerValues[TriggerClick] != 0,
		MenuClick:     d.ControllerValues[MenuClick] != 0,
		SystemClick:   d.ControllerValues[SystemClick] != 0,
		SqueezeClick:  d.ControllerValues[SqueezeClick] != 0,
		TrackpadTouch: d.ControllerValues[TrackpadTouch] != 0,
		TrackpadX:     TrackpadAxis(d.ControllerValues[TrackpadXSlot]),
		TrackpadY:     TrackpadAxis(d.ControllerValues[TrackpadYSlot]),
	}
}

// Snapshot is a copy of the live state safe to hand across goroutines.
type Snapshot struct {
	Name               string      `json:"name"`
	Role               string      `json:"role"`
	VersionID          uint8       `json:"version_id"`
	Pose               Pose        `json:"pose"`
	RawAccel           layers.Vec3 `json:"raw_accel"`
	RawGyro            layers.Vec3 `json:"raw_gyro"`
	HomePosition       layers.Vec3 `json:"home_position"`
	TwoPointDriftAngle float32     `json:"two_point_drift_angle"`
	Inputs             Inputs      `json:"inputs"`
	Battery            uint8       `json:"battery"`
	Charging           bool        `json:"charging"`
	Connected          bool        `json:"connected"`
	Tick               uint64      `json:"tick"`
}

func (d *Device) snapshot() Snapshot {
	return Snapshot{
		Name:               d.Name,
		Role:               d.Role.String(),
		VersionID:          d.VersionID,
		Pose:               d.Pose,
		RawAccel:           d.RawAccel,
		RawGyro:            d.RawGyro,
		HomePosition:       d.HomePosition,
		TwoPointDriftAngle: d.TwoPointDriftAngle,
		Inputs:             d.inputs(),
		Battery:            d.Battery,
		Charging:           d.IsCharging(),
		Connected:          d.IsConnected(),
		Tick:               d.Tick64,
	}
}
