package export

// Event is one row of the operation log.
type Event struct {
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
	SampleID    int    `json:"sample_id" yaml:"sample_id"`
	Description string `json:"event_type" yaml:"event_type"`
}

// DefaultEvents is the reference channel log attached to exports when the
// caller supplies none.
func DefaultEvents() []Event {
	return []Event{
		{Timestamp: "19:31.7", SampleID: 3, Description: "Step jumped due to time limit"},
		{Timestamp: "19:48.5", SampleID: 5, Description: "Step jumped due to time limit"},
		{Timestamp: "20:20.6", SampleID: 7, Description: "Step jumped due to time limit"},
		{Timestamp: "20:47.6", SampleID: 9, Description: "Step jumped due to time limit"},
		{Timestamp: "20:52.9", SampleID: 11, Description: "Step jumped due to current limit"},
		{Timestamp: "21:58.7", SampleID: 14, Description: "Channel test completed"},
	}
}
