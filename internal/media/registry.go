// Package media owns the binary payloads of the offer-creation flow. The
// flow's navigation state carries only lightweight handles; the registry is
// the sole owner of the bytes and each handle must be explicitly released
// when the media item is removed or the flow completes.
package media

import (
	"sync"

	"github.com/google/uuid"
)

// Handle identifies one acquired file inside a Registry.
type Handle string

// File is an in-memory media item selected for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Registry maps handles to files for the lifetime of a create/review flow.
type Registry struct {
	mu    sync.Mutex
	files map[Handle]*File
}

func NewRegistry() *Registry {
	return &Registry{files: make(map[Handle]*File)}
}

// Acquire takes exclusive ownership of f and returns its handle.
func (r *Registry) Acquire(f *File) Handle {
	h := Handle(uuid.NewString())
	r.mu.Lock()
	r.files[h] = f
	r.mu.Unlock()
	return h
}

// Open returns the file for h, if it is still registered.
func (r *Registry) Open(h Handle) (*File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[h]
	return f, ok
}

// Release frees the file behind h. Releasing an unknown handle is a no-op.
func (r *Registry) Release(h Handle) {
	r.mu.Lock()
	delete(r.files, h)
	r.mu.Unlock()
}

// ReleaseAll frees every registered file, used when the flow completes or is
// abandoned.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	clear(r.files)
	r.mu.Unlock()
}

// Len reports how many files are currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}
