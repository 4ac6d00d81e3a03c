// Package workers runs the application's background maintenance tasks.
// It defines the Worker contract and a Workers aggregate that starts every
// registered worker in one call.
package workers

// Worker is a long-running background task. Run is expected to return
// quickly, spawning the worker's goroutine internally.
type Worker interface {
	Run()
}
