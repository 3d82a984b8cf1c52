package adapter

import "errors"

var (
	ErrEmptyFilePath        = errors.New("empty file path")
	ErrUnknownMediaProvider = errors.New("unknown media provider")
	ErrUploadFailed         = errors.New("media upload failed")
	ErrPublishFailed        = errors.New("event publish failed")
)
