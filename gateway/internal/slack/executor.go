package slack

// Executor is an interface for components that can execute summary tasks in
// the background, independent of the dispatch path that submitted them.
type Executor interface {
	// Submit schedules the provided task for execution. It never blocks on the
	// task itself.
	Submit(task func())
}

// goroutineExecutor runs each submitted task on its own goroutine. Tasks are
// not tracked after submission and no limit is placed on how many may run
// concurrently.
type goroutineExecutor struct{}

// NewGoroutineExecutor returns an Executor that runs each submitted task on
// its own goroutine.
func NewGoroutineExecutor() Executor {
	return &goroutineExecutor{}
}

func (g *goroutineExecutor) Submit(task func()) {
	go task()
}
