package model

// UploadedImage describes an image stored by the upload service.
type UploadedImage struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}
