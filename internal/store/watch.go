package store

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads the store whenever the JSON data files are rewritten on disk,
// e.g. by another instance sharing the data directory. The store's own saves
// land here too; the resulting reload is idempotent. Watch blocks until ctx
// is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			log.Debug().Str("file", event.Name).Msg("data file changed, reloading")
			s.Reload()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(watchErr).Msg("data watcher error")
		}
	}
}
