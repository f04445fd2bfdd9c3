package app

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/solidlab/internal/engine/texture"
)

// ensureMedia writes the generated texture images to dir when image does not
// exist yet, so the image source has something to read on a fresh checkout.
// An empty dir disables generation.
func ensureMedia(dir, image string, log *zap.Logger) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(image); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	written, err := texture.WriteArtifacts(dir)
	if err != nil {
		return err
	}
	log.Info("texture images generated",
		zap.String("dir", dir),
		zap.Strings("files", written))
	return nil
}
