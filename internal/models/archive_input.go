package models

// ArchiveInput is one submitted archive: its raw bytes and a display label,
// usually the uploaded file name. ReadErr is set when the archive could not
// be loaded; such an input has no data and counts as a container fault.
type ArchiveInput struct {
	Data    []byte
	Label   string
	ReadErr error
}
