package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

// Dispatcher раскладывает апдейты по очередям на пользователя: сообщения
// одной сессии обрабатываются строго по порядку (иначе накопленные поля
// диалога перемешаются), разные сессии — параллельно.
type Dispatcher struct {
	handle func(ctx context.Context, upd tgbotapi.Update)

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
	g      *errgroup.Group
	ctx    context.Context
}

const queueSize = 16

func NewDispatcher(ctx context.Context, handle func(ctx context.Context, upd tgbotapi.Update)) *Dispatcher {
	g, ctx := errgroup.WithContext(ctx)
	return &Dispatcher{
		handle: handle,
		queues: make(map[int64]chan tgbotapi.Update),
		g:      g,
		ctx:    ctx,
	}
}

// Dispatch кладёт апдейт в очередь его сессии, заводя воркер при первом
// обращении. Блокируется, если очередь сессии переполнена.
func (d *Dispatcher) Dispatch(upd tgbotapi.Update) {
	key := sessionKey(upd)

	d.mu.Lock()
	q, ok := d.queues[key]
	if !ok {
		q = make(chan tgbotapi.Update, queueSize)
		d.queues[key] = q
		d.g.Go(func() error {
			for {
				select {
				case <-d.ctx.Done():
					return nil
				case u, open := <-q:
					if !open {
						return nil
					}
					d.handle(d.ctx, u)
				}
			}
		})
	}
	d.mu.Unlock()

	select {
	case <-d.ctx.Done():
	case q <- upd:
	}
}

// Close закрывает очереди и ждёт, пока воркеры дообработают хвосты.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	for _, q := range d.queues {
		close(q)
	}
	d.queues = make(map[int64]chan tgbotapi.Update)
	d.mu.Unlock()
	return d.g.Wait()
}

// sessionKey — telegram id автора события; им же ключуются диалоги.
func sessionKey(upd tgbotapi.Update) int64 {
	if upd.CallbackQuery != nil && upd.CallbackQuery.From != nil {
		return upd.CallbackQuery.From.ID
	}
	if upd.Message != nil && upd.Message.From != nil {
		return upd.Message.From.ID
	}
	return 0
}
