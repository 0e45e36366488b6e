package mockbackend

import (
	"encoding/json"
	"sync"
)

type sample struct {
	name string
	ext  string
	data []byte
}

type storedImage struct {
	sample
	result json.RawMessage // set once processed
}

// store keeps uploads keyed by image id.
type store struct {
	mu     sync.RWMutex
	images map[string]*storedImage
}

func newStore() *store {
	return &store{images: make(map[string]*storedImage)}
}

func (s *store) put(id string, smp sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = &storedImage{sample: smp}
}

func (s *store) get(id string) (sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	if !ok {
		return sample{}, false
	}
	return img.sample, true
}

func (s *store) setResult(id string, result json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.images[id]; ok {
		img.result = result
	}
}

func (s *store) result(id string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	if !ok || img.result == nil {
		return nil, false
	}
	return img.result, true
}
