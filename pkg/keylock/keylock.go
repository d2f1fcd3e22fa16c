package keylock

import (
	"context"
	"sync"
	"time"
)

// KeyLock набор мьютексов, индексированных строковым ключом
// Записи удаляются, когда последний держатель/ожидающий освобождает ключ
type KeyLock struct {
	mu          sync.Mutex
	locks       map[string]*entry
	waitTimeout time.Duration
}

type entry struct {
	ch   chan struct{}
	refs int
}

// New создает новый KeyLock
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// NewWithTimeout создает KeyLock, в котором ожидание ключа ограничено waitTimeout
// waitTimeout <= 0 означает ожидание без ограничения (только по контексту)
func NewWithTimeout(waitTimeout time.Duration) *KeyLock {
	k := New()
	k.waitTimeout = waitTimeout
	return k
}

// Lock захватывает ключ, ожидая освобождения или отмены контекста
// Возвращает функцию освобождения, которую нужно вызвать ровно один раз
func (k *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	if k.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.waitTimeout)
		defer cancel()
	}

	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.release(key, e)
		})
	}, nil
}

func (k *KeyLock) release(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}

// Len количество ключей, которые сейчас захвачены или ожидаются
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
