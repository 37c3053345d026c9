package golife

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seededGrid() *Grid {
	g := NewGrid(nil, AlgorithmSparseLife)
	g.InsertCells([]Cell{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, Cell{})
	return g
}

func TestSimulationWorkerOneStepCallsOnStop(t *testing.T) {
	w := NewSimulationWorker()
	w.SetStepCount(1)

	stopped := make(chan struct{})
	w.Start(seededGrid(), true, func() { close(stopped) })

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("onStop was never called")
	}

	snapshot := w.Stop()
	assert.Equal(t, int64(1), snapshot.Generation())
}

func TestSimulationWorkerRunsUntilStopped(t *testing.T) {
	w := NewSimulationWorker()
	w.SetStepCount(1)
	w.SetTickDelayMs(1)
	w.Start(seededGrid(), false, nil)
	assert.True(t, w.Running())

	deadline := time.Now().Add(time.Second)
	for w.Snapshot().Generation() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	final := w.Stop()
	assert.False(t, w.Running())
	assert.GreaterOrEqual(t, final.Generation(), int64(3))
}

func TestSimulationWorkerSnapshotNeverObservesPartialStep(t *testing.T) {
	w := NewSimulationWorker()
	w.SetStepCount(1)
	w.SetTickDelayMs(1)
	w.Start(seededGrid(), false, nil)

	for i := 0; i < 20; i++ {
		pop := w.Snapshot().Population()
		assert.True(t, pop == 0 || pop == 3, "blinker population should always be 0 or 3, got %d", pop)
		time.Sleep(2 * time.Millisecond)
	}

	w.Stop()
}

func TestSimulationWorkerPublishAndRotate(t *testing.T) {
	w := NewSimulationWorker()
	snapshot := NewGrid(nil, AlgorithmSparseLife)
	snapshot.generation = 1
	w.snapshot.Store(snapshot)

	working := NewGrid(nil, AlgorithmSparseLife)
	working.generation = 2
	spare := NewGrid(nil, AlgorithmSparseLife)
	spare.generation = 3

	newWorking, newSpare := w.publishAndRotate(working, spare)

	assert.Same(t, snapshot, newWorking, "the previous snapshot becomes the next worker")
	assert.Same(t, working, w.snapshot.Load(), "the buffer that was just stepped gets published")
	assert.Same(t, working, newSpare, "spare keeps holding what was just published")
}

func TestSimulationWorkerStartIsNoOpWhileRunning(t *testing.T) {
	w := NewSimulationWorker()
	w.SetTickDelayMs(50)
	w.Start(seededGrid(), false, nil)

	other := NewGrid(nil, AlgorithmSparseLife)
	other.InsertCells([]Cell{{X: 9, Y: 9}}, Cell{})
	w.Start(other, false, nil)

	snap, _ := w.Snapshot().Get(9, 9)
	assert.False(t, snap, "second Start must be a no-op while the worker is running")
	w.Stop()
}

func TestSimulationWorkerStopWithoutStartIsSafe(t *testing.T) {
	w := NewSimulationWorker()
	assert.Nil(t, w.Stop())
}

func TestSimulationWorkerTimeSinceLastUpdate(t *testing.T) {
	w := NewSimulationWorker()
	assert.Equal(t, time.Duration(0), w.TimeSinceLastUpdate())

	w.SetTickDelayMs(100)
	w.Start(seededGrid(), false, nil)
	time.Sleep(10 * time.Millisecond)
	assert.Greater(t, w.TimeSinceLastUpdate(), time.Duration(0))
	w.Stop()
}

func TestSimulationWorkerSetStepCountClampsToOne(t *testing.T) {
	w := NewSimulationWorker()
	w.SetStepCount(0)
	w.SetTickDelayMs(1)
	w.Start(seededGrid(), false, nil)
	time.Sleep(20 * time.Millisecond)
	final := w.Stop()
	assert.GreaterOrEqual(t, final.Generation(), int64(1))
}
