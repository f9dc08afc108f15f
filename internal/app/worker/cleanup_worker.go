package worker

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CleanupWorker consumes uploaded-image paths from a Redis list and deletes
// the files. Every failure is logged and swallowed: cleanup is best-effort
// and an already-missing file is a non-event.
type CleanupWorker struct {
	rdb       *redis.Client
	queueName string
	imageDir  string
}

func NewCleanupWorker(rdb *redis.Client, queueName, imageDir string) *CleanupWorker {
	return &CleanupWorker{rdb: rdb, queueName: queueName, imageDir: imageDir}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	log.Println("Image cleanup worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Image cleanup worker stopping...")
			return
		default:
			res, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from queue '%s': %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// res is [queueName, value]
			if len(res) < 2 || res[1] == "" {
				continue
			}
			w.clearImage(res[1])
		}
	}
}

// clearImage deletes one uploaded file. Paths are confined to the image
// directory so a queued value can never reach outside of it.
func (w *CleanupWorker) clearImage(imagePath string) {
	rel, err := filepath.Rel(w.imageDir, filepath.Clean(imagePath))
	if err != nil || strings.HasPrefix(rel, "..") {
		log.Printf("WARN: Refusing to clear image outside %s: %q", w.imageDir, imagePath)
		return
	}

	target := filepath.Join(w.imageDir, rel)
	if err := os.Remove(target); err != nil {
		log.Printf("WARN: Failed to clear image %s: %v", target, err)
		return
	}
	log.Printf("Cleared image %s", target)
}
