package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var _ TaskRunnerInterface = (*Runner)(nil)

var ErrQueueFull = errors.New("task queue is full")

// Runner executes queued tasks on a fixed pool of workers. Failed tasks are
// logged and not retried; the next run picks up whatever was not stored.
type Runner struct {
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewRunner(workerCount int, queueSize int) *Runner {
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		workerCount: max(workerCount, 1),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, max(queueSize, 1)),
	}
}

func (r *Runner) Start() {
	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) EnqueueTask(task TaskInterface) error {
	select {
	case <-r.ctx.Done():
		return r.ctx.Err()
	default:
	}

	select {
	case r.taskQueue <- task:
		slog.Debug("Task enqueued", "type", string(task.GetType()), "channel", task.GetChannelName(), "id", task.GetID())
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case task := <-r.taskQueue:
			r.executeTask(id, task)

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Runner) executeTask(workerID int, task TaskInterface) {
	task.Start()

	if err := task.Execute(r.ctx); err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "channel", task.GetChannelName(), "id", task.GetID(), "duration", task.GetDuration(), "error", err)
	}
}
