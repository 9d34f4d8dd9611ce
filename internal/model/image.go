package model

import "time"

// Image is the metadata row of an uploaded image binary.
// FilePath is the public path (/uploads/<filename>); URL mirrors it for clients.
type Image struct {
	ID               int64     `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FilePath         string    `json:"file_path"`
	FileSize         int64     `json:"file_size"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	MimeType         string    `json:"mime_type"`
	UploadedBy       *int64    `json:"uploaded_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	URL              string    `json:"url"`
}
