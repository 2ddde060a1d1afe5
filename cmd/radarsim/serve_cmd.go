package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/radarsim/internal/simradar"
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/rcs"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// runServe serves an HTML dashboard with two debug charts (RCS-vs-angle
// and baseband magnitude) rendered from demo scenarios, one per request
// so the dashboard always reflects a fresh run.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:8090", "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("serve: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleDashboardIndex)
	mux.HandleFunc("/rcs", handleRCSChart)
	mux.HandleFunc("/baseband", handleBasebandChart)

	server := &http.Server{Addr: *addr, Handler: mux}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("radarsim dashboard listening on http://%s", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("serve: shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("serve: shutdown error: %v", err)
	}
	wg.Wait()
	log.Println("serve: stopped")
}

func handleDashboardIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>radarsim dashboard</title></head>
<body style="background:#1e1e1e">
<iframe src="/rcs" style="width:49%;height:600px;border:0"></iframe>
<iframe src="/baseband" style="width:49%;height:600px;border:0"></iframe>
</body></html>`)
}

func handleRCSChart(w http.ResponseWriter, r *http.Request) {
	target, err := demoPlateTarget(10, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rcsTargets := []rcs.Target{{Mesh: target.Mesh, Material: target.Material}}

	const n = 25
	incDir := make([]geom.Vec3, n)
	obsDir := make([]geom.Vec3, n)
	incPol := make([]geom.Vec3C, n)
	obsPol := make([]geom.Vec3C, n)
	angles := make([]float64, n)
	for i := 0; i < n; i++ {
		deg := -60 + float64(i)*120/float64(n-1)
		rad := deg * math.Pi / 180
		dir := geom.Vec3{X: geom.Real(-math.Cos(rad)), Y: geom.Real(math.Sin(rad))}
		incDir[i], obsDir[i] = dir, dir
		incPol[i] = geom.Vec3C{Z: 1}
		obsPol[i] = geom.Vec3C{Z: 1}
		angles[i] = deg
	}

	e := simradar.New(*simconfig.DefaultConfig(), nil)
	sigmas, err := e.SimRCS(simradar.SimRCSInput{
		Targets: rcsTargets,
		Freq:    demoCenterFreq,
		IncDir:  incDir,
		ObsDir:  obsDir,
		IncPol:  incPol,
		ObsPol:  obsPol,
		Density: 1,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	points := make([]opts.ScatterData, n)
	maxAbsDBsm := 1.0
	for i, sigma := range sigmas {
		dBsm := 10 * math.Log10(sigma)
		if math.Abs(dBsm) > maxAbsDBsm {
			maxAbsDBsm = math.Abs(dBsm)
		}
		points[i] = opts.ScatterData{Value: []interface{}{angles[i], dBsm}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "sim_rcs sweep", Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Monostatic RCS vs Incidence Angle", Subtitle: "demo PEC plate"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Angle (deg)", Min: -65, Max: 65, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "RCS (dBsm)", Min: -maxAbsDBsm * 1.1, Max: maxAbsDBsm * 1.1, NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("rcs", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func handleBasebandChart(w http.ResponseWriter, r *http.Request) {
	radar, err := demoRadar(4, 256)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	plate, err := demoPlateTarget(10, 5)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	e := simradar.New(*simconfig.DefaultConfig(), nil)
	result, err := e.SimRadar(simradar.SimRadarInput{
		Radar:          radar,
		Targets:        []simradar.Target{plate},
		FrameStartTime: []float64{0},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	shape := result.Baseband.Shape
	points := make([]opts.ScatterData, 0, shape.Pulses*shape.Samples)
	maxMag := 1.0
	idx := 0
	for pulse := 0; pulse < shape.Pulses; pulse++ {
		for s := 0; s < shape.Samples; s++ {
			v := result.Baseband.At(0, pulse, s)
			mag := math.Hypot(real(v), imag(v))
			if mag > maxMag {
				maxMag = mag
			}
			points = append(points, opts.ScatterData{Value: []interface{}{idx, mag}})
			idx++
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "sim_radar baseband", Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Baseband Magnitude, Channel 0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample Index", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "|I/Q|", Min: 0, Max: maxMag * 1.1, NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("baseband", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
