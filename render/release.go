package render

import "log/slog"

type releaseEntry struct {
	name    string
	release func()
}

// ReleaseList collects release functions as resources are created and runs
// them newest first. The zero value is ready to use.
type ReleaseList struct {
	entries []releaseEntry
	logger  *slog.Logger
}

func NewReleaseList(logger *slog.Logger) *ReleaseList {
	return &ReleaseList{logger: logger}
}

func (l *ReleaseList) Push(name string, release func()) {
	l.entries = append(l.entries, releaseEntry{name: name, release: release})
}

// Adopt moves every entry of batch onto the end of l, preserving order, and
// leaves batch empty.
func (l *ReleaseList) Adopt(batch *ReleaseList) {
	l.entries = append(l.entries, batch.entries...)
	batch.entries = nil
}

func (l *ReleaseList) Len() int {
	return len(l.entries)
}

// Names lists pending releases in the order they will run.
func (l *ReleaseList) Names() []string {
	names := make([]string, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		names = append(names, l.entries[i].name)
	}
	return names
}

// Release runs every pending release function, newest first, and empties
// the list.
func (l *ReleaseList) Release() {
	for len(l.entries) > 0 {
		last := len(l.entries) - 1
		entry := l.entries[last]
		l.entries = l.entries[:last]

		if l.logger != nil {
			l.logger.Debug("release", slog.String("resource", entry.name))
		}
		entry.release()
	}
}
