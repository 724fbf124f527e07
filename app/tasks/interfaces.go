package tasks

// TaskRunnerInterface is the background worker pool used by the API to run
// ingestion off the request path.
//
//	runner := NewRunner(workerCount, queueSize)
//	runner.Start()
//	defer runner.Stop()
//	runner.EnqueueTask(NewIngestChannelTask(ch, ch.CatalogURL(), coordinator))
type TaskRunnerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
