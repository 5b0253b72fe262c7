package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PGHandler is an slog.Handler that batches ERROR+ logs to PostgreSQL.
// Handlers derived through WithAttrs share one buffer.
type PGHandler struct {
	db     *gorm.DB
	state  *pgState
	attrs  []slog.Attr
	ticker *time.Ticker
	done   chan struct{}
}

type pgState struct {
	mu     sync.Mutex
	buffer []models.SystemLog
}

const pgBatchSize = 50

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db:     db,
		state:  &pgState{buffer: make([]models.SystemLog, 0, pgBatchSize)},
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *PGHandler) flushLoop() {
	for {
		select {
		case <-h.ticker.C:
			h.flush()
		case <-h.done:
			h.flush()
			return
		}
	}
}

func (h *PGHandler) flush() {
	batch := h.state.take()
	if len(batch) == 0 {
		return
	}
	if err := h.db.CreateInBatches(batch, pgBatchSize).Error; err != nil {
		slog.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

func (s *pgState) take() []models.SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buffer) == 0 {
		return nil
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, pgBatchSize)
	return batch
}

// push appends e and reports whether the buffer is full.
func (s *pgState) push(e models.SystemLog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = append(s.buffer, e)
	return len(s.buffer) >= pgBatchSize
}

func (h *PGHandler) Stop() {
	h.ticker.Stop()
	close(h.done)
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := newSystemLog(record, h.attrs)
	if h.state.push(entry) {
		go h.flush()
	}
	return nil
}

func newSystemLog(record slog.Record, inherited []slog.Attr) models.SystemLog {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "slug":
			entry.Slug = a.Value.String()
		case "request_id", "requestid":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			if f, ok := a.Value.Any().(float64); ok {
				entry.LatencyMs = int(math.Round(f))
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range inherited {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}
	return entry
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op; grouped attributes are stored flat.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}
