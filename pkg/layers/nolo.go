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

package layers

import (
	"errors"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/vrtoybox/go-nolo/pkg/log"
)

const (
	// NoloReportLayerNum identifies the layer
	NoloReportLayerNum = 1997
)

const (
	// PositionScale converts wire position units to meters
	PositionScale = 0.0001

	// ControllerRecordLen is the size of the controller sub-record. The
	// tracker sub-record always starts right after it, whichever physical
	// unit produced the report.
	ControllerRecordLen = 24
	// TrackerRecordLen is the size of the tracker sub-record including its
	// own version byte.
	TrackerRecordLen = 36
	// MinReportLen is the smallest decrypted report both sub-records fit in.
	MinReportLen = ControllerRecordLen + TrackerRecordLen
)

type ReportID uint8

const (
	// Legacy firmware < 2.0
	ReportLegacyControllerTracker ReportID = 165
	ReportLegacyHMDTracker        ReportID = 166
	// Firmware >= 2.0: controller 0 or 1 plus an HMD tracker sample
	ReportController0HMD ReportID = 16
	ReportController1HMD ReportID = 17
)

// Vec3 ...
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// ControllerRecord is the decoded controller sub-record, bytes 0-23 of a
// decrypted report. The version byte doubles as the report id.
type ControllerRecord struct {
	Version   uint8
	Position  Vec3
	RawAccel  Vec3
	RawGyro   Vec3
	Buttons   [6]bool
	TouchX    uint8
	TouchY    uint8
	Battery   uint8
	Connected uint8
	Tick      uint8
}

// TrackerRecord is the decoded HMD tracker sub-record starting at byte 24.
type TrackerRecord struct {
	Version            uint8
	Position           Vec3
	RawGyro            Vec3
	HomePosition       Vec3
	RawAccel           Vec3
	TwoPointDriftAngle float32
	Connected          uint8
	Battery            uint8
	Tick               uint8
}

// NoloReportLayer ...
type NoloReportLayer struct {
	layers.BaseLayer
	ReportID
	// Every report carries both sub-records at fixed offsets, only one side
	// is live per physical tick.
	Controller *ControllerRecord
	Tracker    *TrackerRecord
}

var NoloReportLayerType = gopacket.RegisterLayerType(NoloReportLayerNum,
	gopacket.LayerTypeMetadata{Name: "NoloReportLayerType", Decoder: gopacket.DecodeFunc(DecodeNoloReportLayer)})

// LayerType returns the type of the NoloReport layer in the layer catalog
func (l *NoloReportLayer) LayerType() gopacket.LayerType {
	return NoloReportLayerType
}

// DecodeControllerRecord decodes bytes 0-23 of a decrypted report.
//
// According to Nolo's official driver headers the packet format is
// [ VersionID(1B) | Position(3x2B) | Accel(3x2B) | Gyro(3x2B) |
//   Buttons(1B) | TouchX(1B) | TouchY(1B) | Battery(1B) | State(1B) | Tick(1B) ]
func DecodeControllerRecord(data []byte) (*ControllerRecord, error) {
	r := NewReader(data)
	rec := &ControllerRecord{}
	var err error

	if rec.Version, err = r.ReadU8(); err != nil {
		return nil, err
	}

	if rec.Position, err = readScaledVec(r); err != nil {
		return nil, err
	}

	// The wire order is x, z, y for both IMU vectors and only z is negated.
	// This is a firmware quirk, not a right-handedness fix, keep it exact.
	if rec.RawAccel, err = readIMUVec(r); err != nil {
		return nil, err
	}
	if rec.RawGyro, err = readIMUVec(r); err != nil {
		return nil, err
	}

	buttons, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	for bit := 0; bit < len(rec.Buttons); bit++ {
		rec.Buttons[bit] = buttons&(1<<bit) != 0
	}

	if rec.TouchX, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.TouchY, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.Battery, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.Connected, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.Tick, err = r.ReadU8(); err != nil {
		return nil, err
	}

	return rec, nil
}

// DecodeTrackerRecord decodes the tracker sub-record at byte 24 of a
// decrypted report.
//
// [ VersionID(1B) | Position(3x2B) | Reserved(3x2B) | Gyro(3x2B) |
//   HomePosition(3x2B) | Accel(3x2B) | DriftAngle(2B) | State(3B) ]
func DecodeTrackerRecord(data []byte) (*TrackerRecord, error) {
	r := NewReader(data)
	rec := &TrackerRecord{}
	var err error

	if err = r.Skip(ControllerRecordLen); err != nil {
		return nil, err
	}

	if rec.Version, err = r.ReadU8(); err != nil {
		return nil, err
	}

	if rec.Position, err = readScaledVec(r); err != nil {
		return nil, err
	}

	// Three reserved words, historically accel/gyro placeholders. Always
	// zero on current firmware.
	if err = r.Skip(6); err != nil {
		return nil, err
	}

	// Tracker IMU vectors arrive in x, y, z order, unlike the controller
	// ones. Still only z is negated.
	if rec.RawGyro, err = readIMUVecXYZ(r); err != nil {
		return nil, err
	}

	if rec.HomePosition, err = readScaledVec(r); err != nil {
		return nil, err
	}

	if rec.RawAccel, err = readIMUVecXYZ(r); err != nil {
		return nil, err
	}

	drift, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	rec.TwoPointDriftAngle = float32(drift)

	if rec.Connected, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.Battery, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if rec.Tick, err = r.ReadU8(); err != nil {
		return nil, err
	}

	return rec, nil
}

func readScaledVec(r *Reader) (Vec3, error) {
	var v Vec3
	x, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	y, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	z, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	v.X = float32(x) * PositionScale
	v.Y = float32(y) * PositionScale
	v.Z = float32(z) * PositionScale
	return v, nil
}

// readIMUVec reads an IMU vector in the controller wire order x, z, y.
func readIMUVec(r *Reader) (Vec3, error) {
	var v Vec3
	x, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	z, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	y, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	v.X = float32(x)
	v.Z = -float32(z)
	v.Y = float32(y)
	return v, nil
}

// readIMUVecXYZ reads an IMU vector in the tracker wire order x, y, z.
func readIMUVecXYZ(r *Reader) (Vec3, error) {
	var v Vec3
	x, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	y, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	z, err := r.ReadI16()
	if err != nil {
		return v, err
	}
	v.X = float32(x)
	v.Y = float32(y)
	v.Z = -float32(z)
	return v, nil
}

// DecodeFromBytes decodes both sub-records of an already decrypted report
func (l *NoloReportLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < MinReportLen {
		df.SetTruncated()
		return errors.New("Nolo report too short. Must carry both sub-records.")
	}

	l.BaseLayer = layers.BaseLayer{Contents: data, Payload: nil}
	l.ReportID = ReportID(data[0])

	controller, err := DecodeControllerRecord(data)
	if err != nil {
		return err
	}
	tracker, err := DecodeTrackerRecord(data)
	if err != nil {
		return err
	}

	l.Controller = controller
	l.Tracker = tracker

	log.Debug("NoloReportLayer: ReportID: %d controller tick: %d tracker tick: %d",
		l.ReportID, controller.Tick, tracker.Tick)

	return nil
}

// DecodeNoloReportLayer ...
func DecodeNoloReportLayer(data []byte, p gopacket.PacketBuilder) error {
	l := &NoloReportLayer{}
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	return nil
}
