package request

// UploadURL holds the request body for a pre-signed asset upload URL.
type UploadURL struct {
	FileName    string `json:"file_name" validate:"required,min=1,max=255"`
	ContentType string `json:"content_type" validate:"required,min=1,max=100"`
}
