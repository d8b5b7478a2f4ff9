package media

// UploadDTO describes one stored image.
type UploadDTO struct {
	StorageID   string `json:"storage_id"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// UploadOutcome is the per-file result of a batch upload. Files succeed
// or fail independently of each other.
type UploadOutcome struct {
	FileName string     `json:"file_name"`
	Uploaded *UploadDTO `json:"uploaded,omitempty"`
	Error    string     `json:"error,omitempty"`
}
