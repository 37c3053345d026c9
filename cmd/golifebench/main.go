// Command golifebench seeds a pattern into a Grid, runs it through a
// SimulationWorker, and prints generation/population at the end.
//
// It is a small exerciser, not a game client: no renderer, no GUI, no
// persisted state.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/noctilu/golife"
)

func main() {
	algo := flag.String("algo", "hashlife", "evolution algorithm: sparse or hashlife")
	steps := flag.Int64("steps", 1000, "number of generations to advance")
	width := flag.Int("width", 64, "seed region width")
	height := flag.Int("height", 64, "seed region height")
	density := flag.Float64("density", 0.3, "seed density in [0, 1]")
	stepCount := flag.Int64("stepCount", 16, "generations per worker tick")
	tickDelayMs := flag.Int64("tickDelay", 0, "milliseconds between worker ticks")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	quiet := flag.Bool("quiet", false, "suppress progress prints")

	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("width/height must be > 0, got width=%d height=%d", *width, *height)
	}
	if *steps < 0 {
		log.Fatalf("steps must be >= 0, got %d", *steps)
	}

	var algorithm golife.Algorithm
	switch *algo {
	case "sparse":
		algorithm = golife.AlgorithmSparseLife
	case "hashlife":
		algorithm = golife.AlgorithmHashLife
	default:
		log.Fatalf("unknown algorithm %q, want sparse or hashlife", *algo)
	}

	rng := rand.New(rand.NewSource(*seed))
	grid := golife.NewGrid(nil, algorithm)
	grid.GenerateNoise(golife.Rect{Width: int32(*width), Height: int32(*height)}, *density, rng)

	if !*quiet {
		fmt.Printf("CFG algo=%s steps=%d region=%dx%d density=%.2f stepCount=%d tickDelay=%dms seed=%d\n",
			*algo, *steps, *width, *height, *density, *stepCount, *tickDelayMs, *seed)
		fmt.Printf("seeded population=%d\n", grid.Population())
	}

	worker := golife.NewSimulationWorker()
	worker.SetStepCount(*stepCount)
	worker.SetTickDelayMs(*tickDelayMs)

	start := time.Now()
	worker.Start(grid, false, nil)
	for worker.Snapshot().Generation() < *steps {
		time.Sleep(time.Millisecond)
	}
	final := worker.Stop()
	elapsed := time.Since(start)

	fmt.Printf("generation=%d population=%d time=%v\n", final.Generation(), final.Population(), elapsed)
}
