package api

import (
	"errors"
	"strings"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/importer"
	"warehouse-twin-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	reconciler *importer.Reconciler
	webpush    *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, webpushOptions *webpush.Options) *Handler {
	var reconciler *importer.Reconciler
	if s != nil {
		reconciler = importer.New(s)
	}
	return &Handler{
		store:      s,
		reconciler: reconciler,
		webpush:    webpushOptions,
	}
}

// isUniqueViolation reports whether err is a unique-index violation.
// Covers postgres and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
