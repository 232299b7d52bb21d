package domain

import "time"

type Status string

const (
	StatusSuccess         Status = "success"
	StatusBackupError     Status = "backup_error"
	StatusConversionError Status = "conversion_error"
	StatusAnalysisError   Status = "analysis_error"
	StatusMoveError       Status = "move_error"
)

func (s Status) IsError() bool {
	return s != StatusSuccess
}

// Result describes the terminal state of one document run. It is returned up
// the call chain instead of being logged ambiently; the caller decides how to
// surface it.
type Result struct {
	Original       string
	NewName        string
	Status         Status
	Classification Classification
	Details        string
}

// LogEntry is one immutable audit record of the processing journal. The JSON
// field names are part of the persisted log format; every entry carries all
// eight keys, empty or not, so external readers of the file see a uniform
// shape.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Original  string `json:"original"`
	NewName   string `json:"neu"`
	Status    Status `json:"status"`
	Category  string `json:"kategorie"`
	Sender    string `json:"absender"`
	Patient   string `json:"patient"`
	Details   string `json:"details"`
}

const LogTimeLayout = "2006-01-02 15:04:05"

// NewLogEntry builds the journal record for a finished document run.
func NewLogEntry(now time.Time, res Result) LogEntry {
	entry := LogEntry{
		Timestamp: now.Format(LogTimeLayout),
		Original:  res.Original,
		NewName:   res.NewName,
		Status:    res.Status,
		Details:   res.Details,
	}
	if res.Status == StatusSuccess {
		entry.Category = res.Classification.Category
		entry.Sender = res.Classification.Sender
		entry.Patient = res.Classification.Patient
	}
	return entry
}
