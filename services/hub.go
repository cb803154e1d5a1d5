package services

import (
	"sync"

	"vcard.link/pkg/metrics"
)

// Hub sahip e-postasına göre anahtarlanmış anlık görüntü (snapshot) aboneliklerini yönetir.
// Dinleyiciler kilit dışında, Publish'i çağıran goroutine üzerinde çalışır.
type Hub[T any] struct {
	topic  string
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]func(T)
}

// NewHub verilen konu adı için boş bir Hub oluşturur. Konu adı metrik etiketi olarak kullanılır.
func NewHub[T any](topic string) *Hub[T] {
	return &Hub[T]{topic: topic, subs: make(map[string]map[uint64]func(T))}
}

// Subscribe dinleyiciyi kaydeder ve aboneliği iptal eden fonksiyonu döndürür.
// İptal fonksiyonu birden fazla çağrılabilir.
func (h *Hub[T]) Subscribe(key string, fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[key] == nil {
		h.subs[key] = make(map[uint64]func(T))
	}
	h.subs[key][id] = fn
	h.mu.Unlock()
	metrics.ActiveSubscriptions.WithLabelValues(h.topic).Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[key], id)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
			h.mu.Unlock()
			metrics.ActiveSubscriptions.WithLabelValues(h.topic).Dec()
		})
	}
}

// HasSubscribers anahtar için en az bir dinleyici var mı?
func (h *Hub[T]) HasSubscribers(key string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[key]) > 0
}

// Publish değeri anahtarın tüm dinleyicilerine iletir.
func (h *Hub[T]) Publish(key string, value T) {
	h.mu.RLock()
	listeners := make([]func(T), 0, len(h.subs[key]))
	for _, fn := range h.subs[key] {
		listeners = append(listeners, fn)
	}
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(value)
	}
}
