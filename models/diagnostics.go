package models

type DiagnosticsStatus string

const (
	DiagnosticsNotStarted DiagnosticsStatus = "not_started"
	DiagnosticsInProgress DiagnosticsStatus = "in_progress"
	DiagnosticsCompleted  DiagnosticsStatus = "completed"
	DiagnosticsFailed     DiagnosticsStatus = "failed"
)

// Diagnostics is the latest diagnostics report of a network.
type Diagnostics struct {
	Status    DiagnosticsStatus `json:"status,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
	Results   Object            `json:"results,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Done reports whether the run has finished, successfully or not.
func (d *Diagnostics) Done() bool {
	return d.Status == DiagnosticsCompleted || d.Status == DiagnosticsFailed
}
