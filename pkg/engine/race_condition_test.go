// pkg/engine/race_condition_test.go
package engine

import (
	"sync"
	"testing"
)

// TestGameRaceCondition reads HUD snapshots from another goroutine while the
// frame loop runs, as the terminal and GUI hosts do
func TestGameRaceCondition(t *testing.T) {
	game := NewGame(testConfig(), nil)
	game.Start()

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				state := game.GetGameState()
				if state.Enemies < 0 || state.Score < 0 {
					t.Errorf("invalid snapshot %+v", state)
					return
				}
			}
		}
	}()

	for i := 0; i < 600; i++ {
		game.Update(1.0 / 60)
		if i%200 == 199 {
			game.SetPaused(!game.GetGameState().Paused)
		}
	}
	close(done)
	wg.Wait()

	if game.Frame != 600 {
		t.Errorf("Frame = %d, expected 600", game.Frame)
	}
}
