package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"vcard.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sseHeartbeat = 15 * time.Second

// latest tek elemanlı, son değerin kazandığı kanal. Yavaş istemci yayıncıyı bekletmez.
type latest[T any] struct {
	ch chan T
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{ch: make(chan T, 1)}
}

func (l *latest[T]) put(v T) {
	for {
		select {
		case l.ch <- v:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// writeEvent tek bir SSE olayını yazar ve flush eder.
func writeEvent(w *bufio.Writer, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}

// streamSnapshots kanala gelen her snapshot'ı istemci bağlantıyı kapatana kadar SSE olarak gönderir.
func streamSnapshots[T any](c *fiber.Ctx, event string, updates *latest[T], unsubscribe func()) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	path := c.Path()
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		ticker := time.NewTicker(sseHeartbeat)
		defer ticker.Stop()

		for {
			select {
			case snapshot := <-updates.ch:
				if err := writeEvent(w, event, snapshot); err != nil {
					configslog.Log.Debug("SSE istemcisi ayrıldı", zap.String("path", path), zap.Error(err))
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
