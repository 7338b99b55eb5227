package entity

// ReportFile is an exported final report, ready to be served
// as a file download.
type ReportFile struct {
	Data        []byte
	ContentType string
	Filename    string
}
