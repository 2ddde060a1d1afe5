package motion

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

func TestSamplerConstantVelocity(t *testing.T) {
	s := Sampler{
		Body: Body{
			Location: Const(geom.Vec3{X: 10}),
			Velocity: Const(geom.Vec3{X: -30}),
		},
		T0: 0,
	}

	pose := s.Pose(0, 0, 0, 1.0) // 1 second later
	if pose.Location.X != -20 {
		t.Errorf("expected X=-20 after 1s at -30 m/s from 10, got %v", pose.Location.X)
	}
}

func TestSamplerGridOverridesIgnoresRate(t *testing.T) {
	shape := Shape{FrameChannels: 1, Pulses: 1, Samples: 2}
	grid, err := NewGrid(shape, []geom.Vec3{{X: 1}, {X: 2}})
	if err != nil {
		t.Fatal(err)
	}

	s := Sampler{
		Body: Body{
			Location: grid,
			Velocity: Const(geom.Vec3{X: 1000}), // should be ignored
		},
	}

	p0 := s.Pose(0, 0, 0, 5.0)
	p1 := s.Pose(0, 0, 1, 5.0)
	if p0.Location.X != 1 || p1.Location.X != 2 {
		t.Errorf("expected grid values verbatim, got %v and %v", p0.Location.X, p1.Location.X)
	}
}

func TestNewGridLengthMismatch(t *testing.T) {
	shape := Shape{FrameChannels: 1, Pulses: 1, Samples: 2}
	_, err := NewGrid(shape, []geom.Vec3{{X: 1}})
	if err == nil {
		t.Fatal("expected an error for a grid whose length does not match its shape")
	}
}

func TestSamplerRotationRate(t *testing.T) {
	s := Sampler{
		Body: Body{
			Rotation:     Const(geom.Euler{}),
			RotationRate: Const(geom.Euler{Yaw: 1}),
		},
	}
	pose := s.Pose(0, 0, 0, 2.0)
	if pose.Rotation.Yaw != 2 {
		t.Errorf("expected yaw=2 after 2s at 1 rad/s, got %v", pose.Rotation.Yaw)
	}
}
