// Package ocr wraps Google Cloud Vision text detection for the document
// cross-check path.
package ocr

import (
	"context"
	"errors"
	"os"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// DetectText runs Vision OCR over the image bytes and returns the full
// detected text. Credentials come from GOOGLE_APPLICATION_CREDENTIALS when
// set, otherwise application default credentials.
func DetectText(ctx context.Context, image []byte) (string, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if credPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credPath != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credPath))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return "", err
	}
	defer client.Close()

	img := &visionpb.Image{Content: image}
	anns, err := client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", err
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", errors.New("no text found in image")
	}
	return anns[0].Description, nil
}
