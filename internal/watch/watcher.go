// Package watch tracks held token accounts over a WebSocket subscription
// and reports coalesced change events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"solana-wallet-metadata/internal/solana"
)

// DefaultFlushInterval is the window within which change notifications
// for the same account collapse into one callback.
const DefaultFlushInterval = 2 * time.Second

// Watcher subscribes to a set of token accounts and invokes a callback
// when any of them changes. Notifications arriving within one flush
// window are coalesced per account.
type Watcher struct {
	ws            solana.WSClient
	onChange      func(pubkey string)
	flushInterval time.Duration
	logger        *log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	watched int

	wg sync.WaitGroup
}

// Option configures the Watcher.
type Option func(*Watcher)

// WithFlushInterval sets the coalescing window.
func WithFlushInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.flushInterval = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher over an established WebSocket client.
// The caller keeps ownership of the client and closes it separately.
func NewWatcher(ws solana.WSClient, onChange func(pubkey string), opts ...Option) *Watcher {
	w := &Watcher{
		ws:            ws,
		onChange:      onChange,
		flushInterval: DefaultFlushInterval,
		logger:        log.New(os.Stdout, "[watch] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch subscribes to every account and starts delivering coalesced
// change callbacks. It can be called once per Watcher; changing the
// account set means closing this watcher and building a new one.
func (w *Watcher) Watch(ctx context.Context, pubkeys []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return errors.New("watcher already started")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	merged := make(chan solana.AccountNotification, 256)

	for _, pubkey := range pubkeys {
		ch, err := w.ws.SubscribeAccount(watchCtx, pubkey)
		if err != nil {
			cancel()
			w.wg.Wait()
			return fmt.Errorf("subscribe account %s: %w", pubkey, err)
		}
		w.wg.Add(1)
		go w.forward(watchCtx, ch, merged)
	}

	w.cancel = cancel
	w.watched = len(pubkeys)

	w.wg.Add(1)
	go w.consume(watchCtx, merged)

	w.logger.Printf("Watching %d accounts (flush interval %v)", len(pubkeys), w.flushInterval)
	return nil
}

// Watched reports the number of accounts under subscription.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched
}

// Close stops all subscriptions and waits for in-flight callbacks.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.watched = 0
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	return nil
}

// forward moves notifications from one subscription into the merged channel.
func (w *Watcher) forward(ctx context.Context, ch <-chan solana.AccountNotification, merged chan<- solana.AccountNotification) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notif, ok := <-ch:
			if !ok {
				return
			}
			select {
			case merged <- notif:
			case <-ctx.Done():
				return
			}
		}
	}
}

// consume collects notifications and fires one callback per changed
// account per flush window.
func (w *Watcher) consume(ctx context.Context, merged <-chan solana.AccountNotification) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case notif := <-merged:
			pending[notif.Pubkey] = struct{}{}
		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			for pubkey := range pending {
				w.onChange(pubkey)
			}
			w.logger.Printf("Flushed %d account changes", len(pending))
			pending = make(map[string]struct{})
		}
	}
}
