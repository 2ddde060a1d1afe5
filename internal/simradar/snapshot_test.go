package simradar

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

func squarePlateTarget(t *testing.T) Target {
	t.Helper()
	m, err := mesh.NewMesh(
		[]geom.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		[]mesh.Cell{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return Target{Mesh: m}
}

func twoPulseTx(t *testing.T) waveform.Transmitter {
	t.Helper()
	return waveform.Transmitter{
		FrameStartTime: []float64{0},
		PulseStartTime: []float64{0, 1e-3},
	}
}

func TestBuildSnapshotsFrameFidelityProducesOneSnapshot(t *testing.T) {
	tx := twoPulseTx(t)
	snaps := buildSnapshots([]Target{squarePlateTarget(t)}, tx, 1e6, motion.Body{}, 0, 0, 4, simconfig.FidelityFrame)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot at frame fidelity, got %d", len(snaps))
	}
	for p := 0; p < 2; p++ {
		for s := 0; s < 4; s++ {
			got := snapshotFor(snaps, simconfig.FidelityFrame, 4, p, s)
			if got.id != snaps[0].id {
				t.Errorf("slot (%d,%d): expected the single frame snapshot, got a different one", p, s)
			}
		}
	}
}

func TestBuildSnapshotsPulseFidelityProducesOnePerPulse(t *testing.T) {
	tx := twoPulseTx(t)
	snaps := buildSnapshots([]Target{squarePlateTarget(t)}, tx, 1e6, motion.Body{}, 0, 0, 4, simconfig.FidelityPulse)
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots (one per pulse), got %d", len(snaps))
	}
	got := snapshotFor(snaps, simconfig.FidelityPulse, 4, 1, 3)
	if got.id != snaps[1].id {
		t.Error("expected slot in pulse 1 to resolve to the pulse-1 snapshot")
	}
}

func TestBuildSnapshotsSampleFidelityProducesOnePerSlot(t *testing.T) {
	tx := twoPulseTx(t)
	snaps := buildSnapshots([]Target{squarePlateTarget(t)}, tx, 1e6, motion.Body{}, 0, 0, 4, simconfig.FidelitySample)
	if len(snaps) != 8 {
		t.Fatalf("expected 8 snapshots (2 pulses * 4 samples), got %d", len(snaps))
	}
	got := snapshotFor(snaps, simconfig.FidelitySample, 4, 1, 2)
	if got.p != 1 || got.s != 2 {
		t.Errorf("expected slot (1,2), got (%d,%d)", got.p, got.s)
	}
}

func TestSlotTimeAccumulatesFrameAndPulseOffsets(t *testing.T) {
	tx := waveform.Transmitter{
		FrameStartTime: []float64{100},
		PulseStartTime: []float64{0, 0.01},
	}
	got := slotTime(tx, 1000, 0, 1, 5)
	want := 100 + 0.01 + 5.0/1000
	if got != want {
		t.Errorf("slotTime = %v, want %v", got, want)
	}
}
