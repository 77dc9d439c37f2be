package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"mshell/internal/storage"
)

// AuditSink записывает аудиторные события.
type AuditSink interface {
	Write(ctx context.Context, ev storage.AuditEvent) error
}

// Статусы исполнения команды в аудите.
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusDenied = "denied"
)

func newRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
