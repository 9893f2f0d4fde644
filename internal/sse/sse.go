package sse

import "sync"

// Hub — простой pub/sub для SSE по runID.
// Закрытие прогона рассылается подписчикам закрытием их каналов.
type Hub struct {
	mu     sync.Mutex
	conns  map[string][]chan string
	closed map[string]bool
}

func NewHub() *Hub {
	return &Hub{
		conns:  map[string][]chan string{},
		closed: map[string]bool{},
	}
}

// Subscribe подписывает клиента на id, возвращает канал и функцию-unsubscribe.
// Если прогон уже закрыт — возвращает сразу закрытый канал.
func (h *Hub) Subscribe(id string) (chan string, func()) {
	ch := make(chan string, 16)

	h.mu.Lock()
	if h.closed[id] {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.conns[id] = append(h.conns[id], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.conns[id]
		for i, c := range list {
			if c == ch {
				h.conns[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// Publish отсылает сообщение всем подписчикам id
func (h *Hub) Publish(id, msg string) {
	h.mu.Lock()
	list := append([]chan string(nil), h.conns[id]...)
	h.mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
			// игнорируем, если канал забит
		}
	}
}

// Close завершает прогон: закрывает каналы подписчиков и помечает id закрытым,
// чтобы стримы не висели после done/error
func (h *Hub) Close(id string) {
	h.mu.Lock()
	list := h.conns[id]
	delete(h.conns, id)
	h.closed[id] = true
	h.mu.Unlock()

	for _, ch := range list {
		close(ch)
	}
}
