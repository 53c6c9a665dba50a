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

package fusion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrtoybox/go-nolo/pkg/layers"
)

func TestIdentity(t *testing.T) {
	f := New()
	assert.Equal(t, QuatIdentity, f.Orientation())

	f.Update(0.01, layers.Vec3{}, layers.Vec3{})
	assert.Equal(t, QuatIdentity, f.Orientation())
}

func TestZeroDtIgnored(t *testing.T) {
	f := New()
	f.Update(0, layers.Vec3{Y: 1}, layers.Vec3{})
	f.Update(-0.01, layers.Vec3{Y: 1}, layers.Vec3{})
	assert.Equal(t, QuatIdentity, f.Orientation())
}

func TestGyroIntegration(t *testing.T) {
	f := New()

	// Quarter turn around y in 100 steps.
	for i := 0; i < 100; i++ {
		f.Update(0.01, layers.Vec3{Y: math.Pi / 2}, layers.Vec3{})
	}

	q := f.Orientation()
	half := math.Pi / 4
	assert.InDelta(t, math.Sin(half), float64(q.Y), 1e-4)
	assert.InDelta(t, math.Cos(half), float64(q.W), 1e-4)
	assert.InDelta(t, 0, float64(q.X), 1e-4)
	assert.InDelta(t, 0, float64(q.Z), 1e-4)
}

func TestGravityCorrection(t *testing.T) {
	f := New()

	// Build up a roll error, then hold the device level. The gravity term
	// must pull the tilt back out.
	f.Update(1, layers.Vec3{Z: 0.2}, layers.Vec3{})
	tilted := f.Orientation()
	assert.Less(t, float64(tilted.W), 0.9999)

	for i := 0; i < 500; i++ {
		f.Update(0.01, layers.Vec3{}, layers.Vec3{Y: 9.8})
	}

	q := f.Orientation()
	assert.Greater(t, float64(q.W), 0.9999)
	assert.InDelta(t, 0, float64(q.Z), 1e-2)
}

func TestGravityWindow(t *testing.T) {
	f := New()
	f.Update(1, layers.Vec3{Z: 0.2}, layers.Vec3{})
	tilted := f.Orientation()

	// Accel magnitudes outside the gravity window are shake, not gravity,
	// and must not correct the estimate.
	for i := 0; i < 100; i++ {
		f.Update(0.01, layers.Vec3{}, layers.Vec3{Y: 100})
		f.Update(0.01, layers.Vec3{}, layers.Vec3{Y: 1})
	}

	q := f.Orientation()
	assert.InDelta(t, float64(tilted.W), float64(q.W), 1e-6)
	assert.InDelta(t, float64(tilted.Z), float64(q.Z), 1e-6)
}

func TestReset(t *testing.T) {
	f := New()
	f.Update(0.5, layers.Vec3{X: 3, Y: 1, Z: 2}, layers.Vec3{})
	assert.NotEqual(t, QuatIdentity, f.Orientation())

	f.Reset()
	assert.Equal(t, QuatIdentity, f.Orientation())
}
