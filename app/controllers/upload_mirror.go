package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/imagestore"
)

var imageStore *imagestore.Client
var imageStoreConfig *imagestore.Config

// SetImageStore injects the optional S3 mirror for uploaded images.
func SetImageStore(client *imagestore.Client, cfg *imagestore.Config) {
	imageStore = client
	imageStoreConfig = cfg
}

// mirrorImage copies an upload to S3. Mirroring is best-effort; the
// local file remains the serving copy.
func mirrorImage(c *fiber.Ctx, localPath, imageUUID, ext string) {
	if imageStore == nil || imageStoreConfig == nil {
		return
	}

	now := time.Now()
	key := imageStoreConfig.ObjectKey(imageUUID, ext, now.Year(), int(now.Month()))
	if _, err := imageStore.UploadFile(c.UserContext(), localPath, key); err != nil {
		log.Warnf("upload: mirroring %s to S3 failed: %v", imageUUID, err)
	}
}
