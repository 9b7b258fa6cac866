package reader

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Refresher периодически вызывает функцию обновления, пока включено
// автообновление. Тик пропускается, если предыдущее обновление еще
// выполняется: очередь накладывающихся обновлений не копится.
// Ручное обновление через Do разделяет тот же флаг занятости.
type Refresher struct {
	interval time.Duration
	refresh  func(context.Context)

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	wg       sync.WaitGroup
	inFlight atomic.Bool
}

// NewRefresher создает Refresher с указанным интервалом и функцией обновления.
func NewRefresher(interval time.Duration, refresh func(context.Context)) *Refresher {
	return &Refresher{interval: interval, refresh: refresh}
}

// Do выполняет обновление, если другое не идет прямо сейчас.
// Возвращает false, когда обновление пропущено.
func (r *Refresher) Do(ctx context.Context) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer r.inFlight.Store(false)
	r.refresh(ctx)
	return true
}

// Start запускает цикл автообновления. Повторный Start без Stop — no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.wg.Add(1)
				go func() {
					defer r.wg.Done()
					r.Do(ctx)
				}()
			}
		}
	}()
}

// Stop останавливает цикл и дожидается завершения начатых обновлений.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.wg.Wait()
}

// Running сообщает, запущен ли цикл автообновления.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
