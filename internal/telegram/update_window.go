package telegram

import "sync"

const defaultUpdateWindow = 1024

// updateWindow помнит последние update_id, чтобы повторная доставка вебхука
// не обрабатывалась дважды. Старые id вытесняются по кругу.
type updateWindow struct {
	mu   sync.Mutex
	seen map[int]struct{}
	ring []int
	next int
}

func newUpdateWindow(size int) *updateWindow {
	if size <= 0 {
		size = defaultUpdateWindow
	}
	return &updateWindow{
		seen: make(map[int]struct{}, size),
		ring: make([]int, 0, size),
	}
}

// Seen отмечает id и сообщает, встречался ли он раньше. Нулевой id не учитывается.
func (w *updateWindow) Seen(id int) bool {
	if id == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[id]; ok {
		return true
	}

	if len(w.ring) < cap(w.ring) {
		w.ring = append(w.ring, id)
	} else {
		delete(w.seen, w.ring[w.next])
		w.ring[w.next] = id
		w.next = (w.next + 1) % len(w.ring)
	}
	w.seen[id] = struct{}{}
	return false
}
