package models

// UploadResult is what a media uploader returns for a stored file.
type UploadResult struct {
	// URL is the public URL of the uploaded file. An empty URL means the
	// upload is unusable.
	URL string `json:"url"`

	// PublicID is the provider-side identifier (Cloudinary public_id or
	// the S3 object key).
	PublicID string `json:"public_id"`
}
