package gdrive

import "time"

// FolderMimeType is the MIME type Drive assigns to folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// Entry is a Drive file or folder, normalized from the API response.
// Size is zero for Google-native documents, which have no binary content.
type Entry struct {
	ID         string
	Name       string
	MimeType   string
	Size       int64
	MD5        string    // hex md5Checksum; empty for Google-native documents
	ModifiedAt time.Time // zero when the API omitted or garbled it
	IsFolder   bool
}

// CreateRequest describes the metadata of a new file. Exactly one parent.
type CreateRequest struct {
	Name     string
	MimeType string
	ParentID string
}

// Quota is the account storage quota in bytes. Limit is zero when the
// account has unlimited storage.
type Quota struct {
	Limit      int64
	Usage      int64
	UsageDrive int64
	UsageTrash int64
}
