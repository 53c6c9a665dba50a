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

// Package fusion estimates a 3-DoF orientation from the raw gyro and accel
// vectors the report decoders produce. Gyro integration drives the estimate,
// the accelerometer pulls pitch and roll back toward gravity. Yaw drift is
// handled upstream by the optical tracking, not here.
package fusion

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/vrtoybox/go-nolo/pkg/layers"
)

const (
	// gravityGain is the complementary filter blend factor per update.
	gravityGain = 0.02
	// gravity magnitude window (m/s^2) outside which accel samples are
	// ignored, the device is being shaken or swung.
	gravityMin = 4.9
	gravityMax = 14.7
)

// Quat is an x, y, z, w orientation quaternion.
type Quat struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

var QuatIdentity = Quat{W: 1}

// Fusion holds the running orientation estimate for one device.
type Fusion struct {
	q quat.Number
}

func New() *Fusion {
	return &Fusion{q: quat.Number{Real: 1}}
}

// Reset recenters the estimate to identity.
func (f *Fusion) Reset() {
	f.q = quat.Number{Real: 1}
}

// Orientation returns the current estimate.
func (f *Fusion) Orientation() Quat {
	return Quat{
		X: float32(f.q.Imag),
		Y: float32(f.q.Jmag),
		Z: float32(f.q.Kmag),
		W: float32(f.q.Real),
	}
}

// Update advances the estimate by dt seconds. gyro is angular velocity in
// rad/s, accel is specific force in m/s^2, both in the device body frame
// with y up.
func (f *Fusion) Update(dt float64, gyro, accel layers.Vec3) {
	if dt <= 0 {
		return
	}

	// Integrate angular velocity in the body frame.
	wx, wy, wz := float64(gyro.X), float64(gyro.Y), float64(gyro.Z)
	rate := math.Sqrt(wx*wx + wy*wy + wz*wz)
	if rate > 0 {
		dq := axisAngle(wx/rate, wy/rate, wz/rate, rate*dt)
		f.q = quat.Mul(f.q, dq)
	}

	// Tilt correction from gravity.
	ax, ay, az := float64(accel.X), float64(accel.Y), float64(accel.Z)
	mag := math.Sqrt(ax*ax + ay*ay + az*az)
	if mag > gravityMin && mag < gravityMax {
		// Measured up in world frame.
		up := quat.Mul(quat.Mul(f.q, quat.Number{Imag: ax / mag, Jmag: ay / mag, Kmag: az / mag}), quat.Conj(f.q))

		// Axis that rotates measured up onto world up (0, 1, 0).
		cx := -up.Kmag
		cz := up.Imag
		sin := math.Sqrt(cx*cx + cz*cz)
		if sin > 1e-9 {
			angle := math.Asin(math.Min(sin, 1))
			corr := axisAngle(cx/sin, 0, cz/sin, gravityGain*angle)
			f.q = quat.Mul(corr, f.q)
		}
	}

	f.normalize()
}

func (f *Fusion) normalize() {
	n := math.Sqrt(f.q.Real*f.q.Real + f.q.Imag*f.q.Imag + f.q.Jmag*f.q.Jmag + f.q.Kmag*f.q.Kmag)
	if n == 0 {
		f.q = quat.Number{Real: 1}
		return
	}
	f.q = quat.Scale(1/n, f.q)
}

func axisAngle(x, y, z, angle float64) quat.Number {
	half := angle / 2
	s := math.Sin(half)
	return quat.Number{
		Real: math.Cos(half),
		Imag: x * s,
		Jmag: y * s,
		Kmag: z * s,
	}
}
