package app

import (
	"context"
	"path/filepath"
	"strings"

	"shopadmin/internal/util"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// Upload is a presigned image upload grant. The client PUTs the file bytes
// to UploadURL; PublicURL is the address to store on the entity afterwards.
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// CreateUpload issues a presigned upload URL for a product or billboard
// image. File bytes never pass through this service.
func (a *App) CreateUpload(ctx context.Context, userID, storeID, filename string) (Upload, error) {
	if strings.TrimSpace(filename) == "" {
		return Upload{}, validationErr("Filename is required")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return Upload{}, validationErr("Unsupported file type")
	}
	if _, err := a.requireStore(userID, storeID); err != nil {
		return Upload{}, err
	}
	key := storeID + "/" + util.NewID() + ext
	uploadURL, err := a.objects.PresignPut(ctx, key, a.uploadExpiry)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: a.objects.PublicURL(key),
	}, nil
}
