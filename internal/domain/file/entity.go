package file

import "time"

// View names the top-level filters a client can browse.
type View string

const (
	ViewMyDrive View = "my-drive"
	ViewRecent  View = "recent"
	ViewStarred View = "starred"
	ViewTrash   View = "trash"
)

// ParseView maps a query/string value to a View, defaulting to my-drive for
// anything unknown.
func ParseView(s string) View {
	switch View(s) {
	case ViewRecent, ViewStarred, ViewTrash:
		return View(s)
	default:
		return ViewMyDrive
	}
}

// File is one stored file's metadata. The bytes themselves live in the blob
// store under StoragePath; DownloadURL is where clients fetch them from.
// Trashed marks soft deletion — the record and blob survive until a hard
// delete from the trash view.
type File struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	OwnerID     int64     `gorm:"column:owner_id;index" json:"owner_id"`
	Name        string    `gorm:"column:name" json:"name"`
	SizeBytes   int64     `gorm:"column:size_bytes" json:"size_bytes"`
	MimeType    string    `gorm:"column:mime_type" json:"mime_type"`
	DownloadURL string    `gorm:"column:download_url" json:"download_url"`
	StoragePath string    `gorm:"column:storage_path" json:"-"` // blob key, hidden from clients
	Starred     bool      `gorm:"column:starred" json:"starred"`
	Trashed     bool      `gorm:"column:trashed" json:"trashed"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;index" json:"uploaded_at"`
}

func (File) TableName() string { return "files" }
