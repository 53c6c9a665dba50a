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

// Package btea implements the Corrected Block TEA (XXTEA) variant used by the
// NOLO CV1 firmware to scramble HID reports. The shift constants and the
// round count derivation must match the firmware bit for bit, the cipher is
// only its own inverse with identical parameters on both sides.
package btea

import (
	"encoding/binary"
)

const delta = 0x9e3779b9

const (
	// ReportOffset is where the encrypted region starts inside a HID report.
	ReportOffset = 1
	// ReportWords is the size of the encrypted region in 32-bit words.
	ReportWords = (64 - 4) / 4
	// ReportBaseRounds is the firmware's base round count for HID reports.
	ReportBaseRounds = 1
	// MinReportLen is the minimum buffer length DecryptReport accepts.
	MinReportLen = ReportOffset + 4*ReportWords
)

// Key is the fixed 4-word block cipher key.
type Key [4]uint32

func mx(sum, y, z uint32, p uint, e uint32, key Key) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (key[(uint32(p)&3)^e] ^ z))
}

// Decrypt runs the decoding passes over v in place. len(v) must be at least 2.
func Decrypt(v []uint32, baseRounds int, key Key) {
	n := len(v)
	rounds := uint32(baseRounds) + 52/uint32(n)
	sum := rounds * delta
	y := v[0]
	var z uint32

	for ; rounds > 0; rounds-- {
		e := (sum >> 2) & 3
		for p := n - 1; p > 0; p-- {
			z = v[p-1]
			v[p] -= mx(sum, y, z, uint(p), e, key)
			y = v[p]
		}
		z = v[n-1]
		v[0] -= mx(sum, y, z, 0, e, key)
		y = v[0]
		sum -= delta
	}
}

// Encrypt is the forward transform matching Decrypt. The firmware only ever
// encrypts; we need both directions for round-trip verification.
func Encrypt(v []uint32, baseRounds int, key Key) {
	n := len(v)
	rounds := uint32(baseRounds) + 52/uint32(n)
	var sum uint32
	z := v[n-1]
	var y uint32

	for ; rounds > 0; rounds-- {
		sum += delta
		e := (sum >> 2) & 3
		for p := 0; p < n-1; p++ {
			y = v[p+1]
			v[p] += mx(sum, y, z, uint(p), e, key)
			z = v[p]
		}
		y = v[0]
		v[n-1] += mx(sum, y, z, uint(n-1), e, key)
		z = v[n-1]
	}
}

// DecryptReport decrypts the 60-byte encrypted region of a HID report in
// place. Byte 0 (the report id) is not covered by the cipher.
func DecryptReport(buf []byte, key Key) error {
	if len(buf) < MinReportLen {
		return ErrReportTooShort{Len: len(buf)}
	}

	var words [ReportWords]uint32
	for i := 0; i < ReportWords; i++ {
		words[i] = binary.LittleEndian.Uint32(buf[ReportOffset+4*i:])
	}

	Decrypt(words[:], ReportBaseRounds, key)

	for i := 0; i < ReportWords; i++ {
		binary.LittleEndian.PutUint32(buf[ReportOffset+4*i:], words[i])
	}
	return nil
}

// EncryptReport is the inverse of DecryptReport, used to build test fixtures.
func EncryptReport(buf []byte, key Key) error {
	if len(buf) < MinReportLen {
		return ErrReportTooShort{Len: len(buf)}
	}

	var words [ReportWords]uint32
	for i := 0; i < ReportWords; i++ {
		words[i] = binary.LittleEndian.Uint32(buf[ReportOffset+4*i:])
	}

	Encrypt(words[:], ReportBaseRounds, key)

	for i := 0; i < ReportWords; i++ {
		binary.LittleEndian.PutUint32(buf[ReportOffset+4*i:], words[i])
	}
	return nil
}
