// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import "testing"

func TestVec3Cross(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	if got := x.Cross(y); got != V3(0, 0, 1) {
		t.Errorf("X × Y = %+v, want +Z", got)
	}
	if got := y.Cross(x); got != V3(0, 0, -1) {
		t.Errorf("Y × X = %+v, want -Z", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"zero", Vec3{}, Vec3{}},
		{"axis", V3(0, 0, 5), V3(0, 0, 1)},
		{"negative", V3(-3, 0, 0), V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalize(); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(1, 2), V2(3, 5)
	if got := a.Add(b); got != V2(4, 7) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); got != V2(2, 3) {
		t.Errorf("Sub = %+v", got)
	}
}
