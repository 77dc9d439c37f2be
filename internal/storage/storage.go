package storage

import (
	"context"
	"time"
)

// AuditEvent фиксирует исполнение одной команды оболочки. Cwd хранит
// каталог, в котором команда была запущена.
type AuditEvent struct {
	ID         int64     `json:"id,omitempty"`
	RequestID  string    `json:"request_id"`
	Subject    string    `json:"subject"`
	Source     string    `json:"source"`
	Command    string    `json:"command"`
	Args       []string  `json:"args,omitempty"`
	Cwd        string    `json:"cwd,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	TS         time.Time `json:"ts"`
}

// AuditQuery задает фильтры выборки аудита. Пустые поля не фильтруют.
type AuditQuery struct {
	From    time.Time
	To      time.Time
	Subject string
	Command string
	Status  string
	Limit   int
}

// Store описывает операции хранилища аудита.
type Store interface {
	SaveAudit(ctx context.Context, ev AuditEvent) error
	QueryAudit(ctx context.Context, q AuditQuery) ([]AuditEvent, error)
	Write(ctx context.Context, ev AuditEvent) error
	Close() error
}
