package commonModels

// DocType classifies an uploaded source file by what can extract it.
type DocType string

var (
	IMAGE       DocType = "IMAGE"
	PDF         DocType = "PDF"
	DOCX        DocType = "DOCX"
	TXT         DocType = "TXT"
	UNSUPPORTED DocType = "UNSUPPORTED"
)

// ExtractedText is the plain-text artifact derived from one source file.
// It is persisted as a .txt sibling of the original so re-ingestion never
// needs to re-run extraction.
type ExtractedText struct {
	SourceFile string
	TextFile   string
	Content    string
}

// IndexEntry is one chunk headed for the vector index. ChunkKey is
// position-derived ("{subject}_{offset}") and recomputed every ingestion run.
type IndexEntry struct {
	ChunkKey string
	Offset   int
	Content  string
}

// SearchHit is one retrieved chunk. Distance is ascending-is-better;
// the slice a query returns is already sorted by it.
type SearchHit struct {
	Content  string
	ChunkKey string
	Distance float32
}

// IngestReport is what a completed ingestion run hands back to the caller.
// ChunksCreated counts what the chunker produced, FinalCount what the
// collection holds afterwards - callers decide what a mismatch means.
type IngestReport struct {
	Subject        string
	ChunksCreated  int
	FilesProcessed []string
	FinalCount     int
}

// QueryResult is the retrieval pipeline's answer to one question. Sources
// travel separately from Answer so callers can still show provenance when
// generation was the part that failed.
type QueryResult struct {
	Query   string
	Answer  string
	Sources []SearchHit
}

// ProcessedFile describes one file the extraction stage handled.
type ProcessedFile struct {
	OriginalFile string `json:"original_file"`
	TextFile     string `json:"text_file"`
	TextLength   int    `json:"text_length"`
}

// ExtractReport summarizes an extraction pass over one subject folder.
// Files that failed extraction simply do not appear in ProcessedFiles.
type ExtractReport struct {
	ProcessedFiles []ProcessedFile
	ExtractedTexts map[string]string
}
