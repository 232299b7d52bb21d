package domain

// FolderSet is the four well-known directories derived from one configured
// inbound root. The root itself holds only untouched inbound PDFs.
type FolderSet struct {
	Inbound string
	Archive string
	Filed   string
	Errors  string
}

// Stage markers prefixed onto filenames routed to the errors folder, so a
// retry can tell which pipeline stage failed.
const (
	MarkerAnalysis   = "ANALYSE"
	MarkerConversion = "KONVERTIERUNG"
)
