package ingest

// Outcome is the terminal state of one item in an ingestion run.
type Outcome int

const (
	OutcomeDropped Outcome = iota
	OutcomeDuplicate
	OutcomeStored
	OutcomeCheckFailed
	OutcomeEnrichFailed
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeStored:
		return "stored"
	case OutcomeCheckFailed:
		return "check_failed"
	case OutcomeEnrichFailed:
		return "enrich_failed"
	case OutcomeStoreFailed:
		return "store_failed"
	default:
		return "unknown"
	}
}

type Report struct {
	Inserted   int `json:"inserted"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	Dropped    int `json:"dropped"`
	FeedErrors int `json:"feed_errors"`
}

// Summarize folds per-item outcomes into the item counters of a report.
func Summarize(outcomes []Outcome) Report {
	var report Report
	for _, outcome := range outcomes {
		switch outcome {
		case OutcomeStored:
			report.Inserted++
		case OutcomeDuplicate:
			report.Skipped++
		case OutcomeDropped:
			report.Dropped++
		default:
			report.Failed++
		}
	}
	return report
}
