package meditation

// ExportVersion is the current JSONL export format version.
const ExportVersion = 1

// ExportHeader is the first line of a JSONL export file.
type ExportHeader struct {
	StoicExport bool  `json:"stoic_export"`
	Version     int   `json:"version"`
	ExportedAt  int64 `json:"exported_at"`
	Count       int   `json:"count"`
}

// ExportRecord is one meditation line in a JSONL export file.
type ExportRecord struct {
	ID int64 `json:"id"`
	Meditation
}
