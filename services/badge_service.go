package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/prasaja/job_portal/configs"
	"github.com/google/uuid"
)

// UploadBadge normalizes an assessment badge reference to a hosted URL.
// Accepted forms: an http(s) URL (returned untouched), a base64 data URI, or
// a local file path.
func UploadBadge(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty badge reference")
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	var payload []byte
	if strings.HasPrefix(ref, "data:") {
		idx := strings.Index(ref, ";base64,")
		if idx < 0 {
			return "", fmt.Errorf("badge data URI is not base64 encoded")
		}
		decoded, err := base64.StdEncoding.DecodeString(ref[idx+len(";base64,"):])
		if err != nil {
			return "", fmt.Errorf("failed to decode badge payload: %v", err)
		}
		payload = decoded
	} else {
		raw, err := os.ReadFile(ref)
		if err != nil {
			return "", fmt.Errorf("failed to read badge file: %v", err)
		}
		payload = raw
	}

	return uploadToCloudinary(payload, "job_portal_badges", fmt.Sprintf("badges/%s", uuid.New().String()))
}

func uploadToCloudinary(fileBytes []byte, folder, publicID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "auto",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
