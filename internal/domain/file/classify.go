package file

import "strings"

// Category is the display bucket a file falls into. Clients use it to pick a
// thumbnail or an inline preview.
type Category string

const (
	CategoryImage      Category = "image"
	CategoryPDF        Category = "pdf"
	CategoryWord       Category = "word"
	CategoryExcel      Category = "excel"
	CategoryPowerPoint Category = "powerpoint"
	CategoryVideo      Category = "video"
	CategoryAudio      Category = "audio"
	CategoryGeneric    Category = "generic"
)

// Classify maps a declared MIME type and file name to a Category. Extension
// checks are a fallback for absent or generic MIME types such as
// application/octet-stream. First match wins. An image without a download URL
// cannot be rendered inline, so it falls through to the remaining rules.
func Classify(mimeType, name, downloadURL string) Category {
	mime := strings.ToLower(mimeType)
	lower := strings.ToLower(name)

	switch {
	case strings.HasPrefix(mime, "image/") && downloadURL != "":
		return CategoryImage
	case mime == "application/pdf" || strings.HasSuffix(lower, ".pdf"):
		return CategoryPDF
	case strings.Contains(mime, "wordprocessingml") || strings.Contains(mime, "msword") ||
		strings.HasSuffix(lower, ".doc") || strings.HasSuffix(lower, ".docx"):
		return CategoryWord
	case strings.Contains(mime, "spreadsheetml") || strings.Contains(mime, "excel") ||
		strings.HasSuffix(lower, ".xls") || strings.HasSuffix(lower, ".xlsx") ||
		strings.HasSuffix(lower, ".csv"):
		return CategoryExcel
	case strings.Contains(mime, "presentationml") ||
		strings.HasSuffix(lower, ".ppt") || strings.HasSuffix(lower, ".pptx"):
		return CategoryPowerPoint
	case strings.HasPrefix(mime, "video/") || strings.HasSuffix(lower, ".mp4"):
		return CategoryVideo
	case strings.HasPrefix(mime, "audio/") || strings.HasSuffix(lower, ".mp3"):
		return CategoryAudio
	default:
		return CategoryGeneric
	}
}

// Category classifies the record from its own fields.
func (f *File) Category() Category {
	return Classify(f.MimeType, f.Name, f.DownloadURL)
}
