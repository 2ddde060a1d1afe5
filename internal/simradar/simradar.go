package simradar

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/banshee-data/radarsim/internal/simradar/baseband"
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/interference"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/physopt"
	"github.com/banshee-data/radarsim/internal/simradar/pointsim"
	"github.com/banshee-data/radarsim/internal/simradar/raylog"
	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"github.com/banshee-data/radarsim/internal/simradar/simerr"
	"github.com/banshee-data/radarsim/internal/simradar/storage"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// SimRadarInput is sim_radar's full argument list, per spec.md §6
// operation 1.
type SimRadarInput struct {
	Radar           Radar
	Targets         []Target
	PointTargets    []pointsim.Target
	FrameStartTime  []float64 // frame_time[]: one absolute start time per frame
	T0              float64   // motion-sampler reference epoch
	Density         float64   // rays per wavelength; 0 uses the engine default
	RayFilter       *raytrace.Filter
	Interferers     []interference.Source
	BackPropagating bool
	NoiseDisabled   bool
	NoiseSeed       uint64
	LogPath         string // overrides Config.LogPath when non-empty
}

// SimRadarOutput is sim_radar's result: the accumulated baseband, the
// materialized noise buffer, the optional interference buffer, and the
// timestamp of the run's last simulated frame.
type SimRadarOutput struct {
	Baseband     *baseband.Grid
	Noise        *baseband.Grid
	Interference *baseband.Grid
	Timestamp    float64
	Warnings     []simerr.Warning
}

// SimRadar runs the full electromagnetic baseband simulation: point
// targets and radar-on-radar interference via their closed-form kernels,
// and mesh targets via shoot-and-bounce-ray tracing fanned out over the
// (frame, Tx channel) index with a bounded worker pool, per spec.md §5.
func (e *Engine) SimRadar(in SimRadarInput) (*SimRadarOutput, error) {
	const op = "sim_radar"
	cfg := e.configSnapshot()
	started := time.Now().UnixNano()

	if len(in.FrameStartTime) == 0 {
		return nil, simerr.New(op, simerr.InvalidInput, fmt.Errorf("frame_time must have at least one entry"))
	}
	tx := in.Radar.Transmitter
	tx.FrameStartTime = in.FrameStartTime
	rx := in.Radar.Receiver
	if in.Radar.SamplesPerPulse <= 0 {
		return nil, simerr.New(op, simerr.InvalidInput, fmt.Errorf("radar.SamplesPerPulse must be positive"))
	}
	if err := tx.Validate(); err != nil {
		return nil, simerr.New(op, simerr.InvalidInput, err)
	}
	if err := rx.Validate(); err != nil {
		return nil, simerr.New(op, simerr.InvalidInput, err)
	}
	for i, tgt := range in.Targets {
		if tgt.Mesh == nil {
			return nil, simerr.New(op, simerr.InvalidInput, fmt.Errorf("target %d has no mesh", i))
		}
	}

	if err := checkFreeTierRadar(cfg.FreeTierLimit, in.Targets, in.PointTargets, in.Radar); err != nil {
		return nil, err
	}

	filter := cfg.RayFilter
	if in.RayFilter != nil {
		filter = *in.RayFilter
	}
	density := cfg.RayDensity
	if in.Density > 0 {
		density = in.Density
	}
	logPath := cfg.LogPath
	if in.LogPath != "" {
		logPath = in.LogPath
	}

	frames := len(tx.FrameStartTime)
	pulses := len(tx.PulseStartTime)
	samples := in.Radar.SamplesPerPulse
	numTx := len(tx.Channels)
	numRx := len(rx.Channels)
	numCh := numTx * numRx

	shape := baseband.Shape{Frames: frames, ChannelsTotal: numCh, NumRx: numRx, Pulses: pulses, Samples: samples}
	integrator := baseband.NewIntegrator(shape, rx)

	if !in.NoiseDisabled {
		materializeNoise(integrator, tx, rx, frames, pulses, samples, numCh, numTx, in.NoiseSeed)
	}

	if err := pointsim.Simulate(pointsim.Context{
		Radar:       motion.Sampler{Body: in.Radar.Body, T0: in.T0},
		Transmitter: tx,
		Receiver:    rx,
		T0:          in.T0,
		Frames:      frames,
		Pulses:      pulses,
		Samples:     samples,
	}, in.PointTargets, integrator); err != nil {
		return nil, simerr.New(op, simerr.Internal, err)
	}

	for _, src := range in.Interferers {
		if err := interference.Simulate(src, interference.Context{
			Receiver: motion.Sampler{Body: in.Radar.Body, T0: in.T0},
			Rx:       rx,
			T0:       in.T0,
			Frames:   frames,
			Pulses:   pulses,
			Samples:  samples,
		}, integrator); err != nil {
			return nil, simerr.New(op, simerr.Internal, err)
		}
	}

	var rayLogWriter *raylog.Writer
	if logPath != "" {
		w, err := raylog.Create(logPath)
		if err != nil {
			return nil, simerr.New(op, simerr.Internal, err)
		}
		rayLogWriter = w
		defer rayLogWriter.Close()
	}

	snapsByFrame := make([][]snapshot, frames)
	for fr := 0; fr < frames; fr++ {
		snapsByFrame[fr] = buildSnapshots(in.Targets, tx, rx.Fs, in.Radar.Body, in.T0, fr, samples, cfg.Fidelity)
	}

	result := &simResult{warnings: nil}
	var rayLogMu sync.Mutex

	type job struct{ fr, tx int }
	jobs := make([]job, 0, frames*numTx)
	for fr := 0; fr < frames; fr++ {
		for txIdx := 0; txIdx < numTx; txIdx++ {
			jobs = append(jobs, job{fr: fr, tx: txIdx})
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each worker owns its own scratch state (nothing shared but
			// read-only BVHs, waveform tables, and antenna patterns);
			// integrator writes never collide across (frame, Tx channel)
			// jobs since every job touches a disjoint set of grid rows.
			for j := range jobCh {
				traceChannel(traceChannelArgs{
					in:          &in,
					tx:          tx,
					rx:          rx,
					fr:          j.fr,
					txIdx:       j.tx,
					pulses:      pulses,
					samples:     samples,
					numCh:       numCh,
					fidelity:    cfg.Fidelity,
					density:     density,
					filter:      filter,
					maxRays:     cfg.MaxRaysPerSlot,
					snaps:       snapsByFrame[j.fr],
					integrator:  integrator,
					rayLog:      rayLogWriter,
					rayLogMu:    &rayLogMu,
					result:      result,
				})
			}
		}()
	}
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	out := &SimRadarOutput{
		Baseband:     integrator.Baseband,
		Noise:        integrator.Noise,
		Interference: integrator.Interference,
		Timestamp:    tx.FrameStartTime[frames-1],
		Warnings:     result.snapshotWarnings(),
	}

	if e.runs != nil {
		finished := time.Now().UnixNano()
		run := &storage.Run{Operation: op, StartedAtNs: started, RayLogPath: logPath}
		if err := e.runs.InsertRun(run); err == nil {
			msgs := make([]string, len(out.Warnings))
			for i, w := range out.Warnings {
				msgs[i] = w.String()
			}
			_ = e.runs.FinishRun(run.RunID, finished, msgs, "")
		}
	}

	return out, nil
}

// simResult collects warnings across the worker pool under a mutex; a
// RayBudgetExhausted truncation is recorded once per (frame, Tx channel)
// job rather than once per slot, so a long run that truncates every slot
// doesn't flood the caller with one warning per sample.
type simResult struct {
	mu       sync.Mutex
	warnings []simerr.Warning
}

func (r *simResult) addWarning(w simerr.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

func (r *simResult) snapshotWarnings() []simerr.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]simerr.Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func materializeNoise(integrator *baseband.Integrator, tx waveform.Transmitter, rx waveform.Receiver, frames, pulses, samples, numCh, numTx int, seed uint64) {
	sigma := baseband.Sigma(baseband.NoiseParams{
		NoiseBandwidthHz:   rx.NoiseBandwidthHz,
		RFGainLinear:       math.Pow(10, rx.RFGainDB/10),
		BasebandGainLinear: math.Pow(10, rx.BasebandGainDB/10),
		LoadOhm:            rx.LoadOhm,
	})
	for fr := 0; fr < frames; fr++ {
		pulseStartAbs := make([]float64, pulses)
		for p := range pulseStartAbs {
			pulseStartAbs[p] = tx.FrameStartTime[fr] + tx.PulseStartTime[p]
		}
		tsMin := pulseStartAbs[0]
		tsMax := pulseStartAbs[pulses-1] + float64(samples-1)/rx.Fs
		vectors := baseband.FrameNoise(numCh, tsMin, tsMax, rx.Fs, sigma, seed+uint64(fr)*0x100000001B3)
		integrator.WriteFrameNoise(fr, numTx, vectors, tsMin, rx.Fs, pulseStartAbs)
	}
}

type traceChannelArgs struct {
	in         *SimRadarInput
	tx         waveform.Transmitter
	rx         waveform.Receiver
	fr, txIdx  int
	pulses     int
	samples    int
	numCh      int
	fidelity   simconfig.Fidelity
	density    float64
	filter     raytrace.Filter
	maxRays    int
	snaps      []snapshot
	integrator *baseband.Integrator
	rayLog     *raylog.Writer
	rayLogMu   *sync.Mutex
	result     *simResult
}

// traceChannel runs SBR for one (frame, Tx channel) job across every
// pulse/sample slot of that frame: emitting rays at the channel's
// continuously-sampled pose (electrical delay is always evaluated at the
// exact slot time) while reusing the fidelity-cadence snapshot's BVHs for
// geometry, then tracing and accumulating into the shared integrator.
func traceChannel(a traceChannelArgs) {
	txCh := a.tx.Channels[a.txIdx]
	txSampler := motion.Sampler{Body: a.in.Radar.Body, T0: a.in.T0}
	truncated := false

	for p := 0; p < a.pulses; p++ {
		for s := 0; s < a.samples; s++ {
			tSample := slotTime(a.tx, a.rx.Fs, a.fr, p, s)
			snap := snapshotFor(a.snaps, a.fidelity, a.samples, p, s)

			pose := txSampler.Pose(a.fr, p, s, tSample)
			rot := pose.Rotation.RotationMatrix()
			origin := rot.Apply(txCh.Location).Add(pose.Location)

			fInst, err := a.tx.FreqAt(p, tSample-a.tx.PulseStartTime[p]-a.tx.FrameStartTime[a.fr]-txCh.PulseDelay)
			if err != nil {
				continue
			}

			rays := raytrace.EmitRays(txCh, origin, rot, fInst, a.density, targetExtent(snap))
			if a.maxRays > 0 && len(rays) > a.maxRays {
				rays = rays[:a.maxRays]
				truncated = true
			}
			if len(rays) == 0 {
				continue
			}

			reflect := makeReflector(a.in.Targets, snap.bvhs)
			contribute := makeContributor(contributorArgs{
				in:         a.in,
				tx:         a.tx,
				rx:         a.rx,
				fr:         a.fr,
				txIdx:      a.txIdx,
				p:          p,
				s:          s,
				tSample:    tSample,
				numCh:      a.numCh,
				bvhs:       snap.bvhs,
				tMax:       snap.tMax,
				integrator: a.integrator,
				rayLog:     a.rayLog,
				rayLogMu:   a.rayLogMu,
				snapID:     snap.id,
			})

			raytrace.Trace(rays, snap.bvhs, a.filter, snap.tMax, reflect, contribute)
		}
	}

	if truncated {
		a.result.addWarning(simerr.Warning{
			Kind:    simerr.RayBudgetExhausted,
			Message: fmt.Sprintf("frame %d tx channel %d: ray emission capped at %d rays per slot", a.fr, a.txIdx, a.maxRays),
		})
	}
}

// targetExtent is a coarse estimate of the illuminated scene's size, used
// only to tighten EmitRays' diffraction-limited spacing; it never affects
// correctness, only ray density. Half of meshExtent (the snapshot's
// largest target OBB diagonal) is preferred when present since it tracks
// target size rather than target range; snap.tMax/4 (half the full
// radar-to-target bounding diagonal, since tMax is twice that diagonal)
// is the fallback for target-free snapshots (e.g. interference-only runs).
func targetExtent(snap snapshot) geom.Real {
	if snap.meshExtent > 0 {
		return snap.meshExtent / 2
	}
	return snap.tMax / 4
}

type contributorArgs struct {
	in         *SimRadarInput
	tx         waveform.Transmitter
	rx         waveform.Receiver
	fr, txIdx  int
	p, s       int
	tSample    float64
	numCh      int
	bvhs       []raytrace.BVHEntry
	tMax       geom.Real
	integrator *baseband.Integrator
	rayLog     *raylog.Writer
	rayLogMu   *sync.Mutex
	snapID     uint64
}

// makeReflector adapts physopt.Reflect/GroundBlocks into a
// raytrace.Reflector bound to this run's targets, orienting the BVH's
// face normal toward the incident ray first since physopt.Reflect assumes
// that convention but WorldFaceNormal's sign follows mesh winding, not
// the ray.
func makeReflector(targets []Target, bvhs []raytrace.BVHEntry) raytrace.Reflector {
	return func(incidentDir geom.Vec3, incidentField geom.Vec3C, normal geom.Vec3, targetIdx, face int) (geom.Vec3, geom.Vec3C, bool) {
		tgt := targets[targetIdx]
		n := orientNormal(incidentDir, normal)
		dir, field := physopt.Reflect(incidentDir, incidentField, n, tgt.Material)
		if physopt.GroundBlocks(tgt.IsGround, n, dir) {
			return dir, field, true
		}
		return dir, field, false
	}
}

func orientNormal(dir, normal geom.Vec3) geom.Vec3 {
	if normal.Dot(dir) > 0 {
		return normal.Scale(-1)
	}
	return normal
}

// makeContributor adapts physopt.ScatteredField into a raytrace.Contributor
// that radiates a hit's reflected field toward every Rx channel: the
// total path length (Tx through every prior bounce to this hit, plus the
// return leg to the Rx channel) sets both the PO integral's 1/R decay and
// the delay/phase/modulation lookup, matching the engine's single
// far-field radiation step per traced path (see DESIGN.md for the
// simplification this implies relative to per-segment spreading loss).
func makeContributor(a contributorArgs) raytrace.Contributor {
	numRx := len(a.rx.Channels)
	return func(hit mesh.RayHit, targetIdx int, ray raytrace.Ray) {
		tgt := a.in.Targets[targetIdx]
		area := float64(tgt.Mesh.FaceArea(hit.Face))
		if area <= 0 {
			return
		}
		incidentPath := float64(ray.PathLen) + float64(hit.Hit.T)

		txPowerLinear := math.Pow(10, a.tx.TxPowerDBm/10) * 1e-3
		txCh := a.tx.Channels[a.txIdx]

		rxSampler := motion.Sampler{Body: a.in.Radar.Body, T0: a.in.T0}
		rxPose := rxSampler.Pose(a.fr, a.p, a.s, a.tSample)
		rxRot := rxPose.Rotation.RotationMatrix()

		for rxIdx, rxCh := range a.rx.Channels {
			rxPos := rxRot.Apply(rxCh.Location).Add(rxPose.Location)
			rLeg := float64(rxPos.Sub(hit.Point).Len())
			if rLeg == 0 {
				continue
			}

			totalR := incidentPath + rLeg
			tau := totalR / geom.SpeedOfLight
			tWave := a.tSample - tau - txCh.PulseDelay - a.tx.PulseStartTime[a.p] - a.tx.FrameStartTime[a.fr]
			f, err := a.tx.FreqAt(a.p, tWave)
			if err != nil {
				continue
			}

			azRx, elRx := pointsim.AzEl(rxRot, hit.Point.Sub(rxPos))
			gRx := rxCh.Gain(azRx, elRx)
			if gRx <= 0 {
				continue
			}

			surfaceCurrent := ray.Field.Scale(complex(math.Sqrt(txPowerLinear*gRx), 0))
			scattered := physopt.ScatteredField(area, surfaceCurrent, f, totalR)
			proj := scattered.Dot(rxCh.Polarization)

			mod, err := txCh.ModulationAt(a.p, a.tSample-a.tx.PulseStartTime[a.p]-a.tx.FrameStartTime[a.fr]-txCh.PulseDelay)
			if err != nil {
				continue
			}
			fcIdx := a.fr*a.numCh + a.txIdx*numRx + rxIdx
			phaseNoise := a.tx.PhaseNoiseAt(fcIdx, a.p, a.s)

			contribution := proj * mod * phaseNoise
			a.integrator.Add(a.fr, a.txIdx, rxIdx, a.p, a.s, contribution)

			// Back-propagation traces one additional ray from the hit
			// point straight to the radar; its contribution is added on
			// top of the direct term above, never in place of it, per
			// spec.md §4.4/§8's monotonicity invariant (enabling
			// back-propagation may only add energy, never remove it).
			if a.in.BackPropagating && raytrace.BackPropagate(hit.Point, rxPos, a.bvhs, a.tMax) {
				a.integrator.Add(a.fr, a.txIdx, rxIdx, a.p, a.s, contribution)
			}

			if a.rayLog != nil {
				a.rayLogMu.Lock()
				_ = a.rayLog.Append(raylog.Record{
					SnapshotID:  a.snapID,
					RayIdx:      uint64(ray.EmitIdx),
					Hit:         hit.Point,
					Direction:   ray.Dir,
					Reflections: int32(ray.Reflections),
				})
				a.rayLogMu.Unlock()
			}
		}
	}
}
