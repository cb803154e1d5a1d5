package services

import "sync"

// ownerGate aynı sahip için çağrıları sıraya sokan anahtarlı kilit.
// Farklı sahipler birbirini beklemez; kullanılmayan girdiler serbest bırakılır.
type ownerGate struct {
	mu    sync.Mutex
	locks map[string]*gateEntry
}

type gateEntry struct {
	mu   sync.Mutex
	refs int
}

func newOwnerGate() *ownerGate {
	return &ownerGate{locks: make(map[string]*gateEntry)}
}

// Lock anahtarın kilidini alır ve bırakma fonksiyonunu döndürür.
func (g *ownerGate) Lock(key string) (unlock func()) {
	g.mu.Lock()
	entry, ok := g.locks[key]
	if !ok {
		entry = &gateEntry{}
		g.locks[key] = entry
	}
	entry.refs++
	g.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		g.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(g.locks, key)
		}
		g.mu.Unlock()
	}
}

// size test ve izleme için aktif girdi sayısı.
func (g *ownerGate) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
