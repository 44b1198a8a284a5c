package config

import (
	"time"

	"github.com/dshills/quill/internal/config/watcher"
)

// ReloadDebounce is how long the config file must be quiet before a
// change is reported.
const ReloadDebounce = 150 * time.Millisecond

// Watch calls notify from a background goroutine whenever the file at
// path changes. notify must not touch editor state; it should only post
// an event to the loop that owns it. onError receives watcher errors and
// may be nil. Close the returned watcher to stop.
func Watch(path string, notify func(), onError func(error)) (*watcher.Watcher, error) {
	opts := []watcher.Option{watcher.WithDebounce(ReloadDebounce)}
	if onError != nil {
		opts = append(opts, watcher.WithErrorHandler(onError))
	}
	w, err := watcher.New(func(watcher.Event) { notify() }, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
