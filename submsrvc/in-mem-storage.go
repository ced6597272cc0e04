package submsrvc

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

type storedFile struct {
	Content   []byte
	MediaType string
}

// InMemFileStorage keeps uploaded files in process memory.
type InMemFileStorage struct {
	mu      sync.RWMutex
	baseURL string
	files   map[string]storedFile
}

var _ FileStorage = (*InMemFileStorage)(nil)

func NewInMemFileStorage(baseURL string) *InMemFileStorage {
	return &InMemFileStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		files:   make(map[string]storedFile),
	}
}

func (s *InMemFileStorage) SaveFile(ctx context.Context, key string, content []byte, mediaType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = storedFile{Content: content, MediaType: mediaType}
	return s.baseURL + "/" + key, nil
}

// Get returns the stored content and media type of key.
func (s *InMemFileStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[key]
	return f.Content, f.MediaType, ok
}

func (s *InMemFileStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	return keys
}

// ServeHTTP serves stored files by key, with the URL path relative to the
// mount point.
func (s *InMemFileStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	content, mediaType, ok := s.Get(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", mediaType)
	_, _ = w.Write(content)
}
