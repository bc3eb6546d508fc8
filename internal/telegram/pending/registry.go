package pending

import (
	"sort"
	"sync"
)

type slot struct {
	value any
	seq   uint64
}

// Registry хранит ожидания в памяти процесса, после рестарта они теряются
type Registry struct {
	mu      sync.Mutex
	entries map[Key]slot
	seq     uint64
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Key]slot),
	}
}

func (r *Registry) Put(key Key, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.entries[key] = slot{value: value, seq: r.seq}
}

func (r *Registry) Get(key Key) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.entries[key]
	return s.value, ok
}

func (r *Registry) Has(key Key) bool {
	_, ok := r.Get(key)
	return ok
}

func (r *Registry) Delete(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
}

func (r *Registry) Take(key Key) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	return s.value, ok
}

func (r *Registry) DeleteIf(key Key, match func(value any) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.entries[key]
	if !ok || !match(s.value) {
		return false
	}
	delete(r.entries, key)
	return true
}

func (r *Registry) FindFirst(kind Kind, chatID int64) (Entry, bool) {
	list := r.Scan(kind, chatID)
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[0], true
}

func (r *Registry) Scan(kind Kind, chatID int64) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	type found struct {
		entry Entry
		seq   uint64
	}
	var matched []found
	for k, s := range r.entries {
		if k.Kind != kind || (chatID != 0 && k.ChatID != chatID) {
			continue
		}
		matched = append(matched, found{entry: Entry{Key: k, Value: s.value}, seq: s.seq})
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	result := make([]Entry, len(matched))
	for i, m := range matched {
		result[i] = m.entry
	}
	return result
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
