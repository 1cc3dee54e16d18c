// Package server exposes a trained classifier as a JSON decision endpoint.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Labels maps class indices to decisions.
var Labels = []string{"BUY", "SELL", "IGNORE"}

// MaxBodyBytes caps the request payload.
const MaxBodyBytes = 1 << 20

// Classifier picks a class for an input vector.
type Classifier interface {
	Classify(x []float64) (int, error)
}

// Handler serves decisions. Requests are handled one at a time: each one's
// forward pass, notification and response finish before the next starts.
type Handler struct {
	model    Classifier
	notifier Notifier
	logger   *log.Logger
	mu       sync.Mutex
}

// Option configures a Handler.
type Option func(*Handler)

// WithNotifier sets where decisions are forwarded.
func WithNotifier(n Notifier) Option {
	return func(h *Handler) {
		if n != nil {
			h.notifier = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a handler for model.
func New(model Classifier, opts ...Option) *Handler {
	h := &Handler{
		model:    model,
		notifier: NopNotifier{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set("X-Request-Id", id)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.logger.Printf("[%s] %s %s: method not allowed", id, r.Method, r.URL.Path)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.badRequest(w, id, errors.Wrap(ErrMalformedRequest, err.Error()))
		return
	}
	features, err := DecodeFeatures(body)
	if err != nil {
		h.badRequest(w, id, err)
		return
	}

	decision, err := h.Decide(features)
	if err != nil {
		h.logger.Printf("[%s] classify failed: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if err := h.notifier.Notify(r.Context(), decision); err != nil {
		h.logger.Printf("[%s] notify failed: %v", id, err)
	}

	h.logger.Printf("[%s] %+v => %s", id, features, decision)
	writeJSON(w, http.StatusOK, map[string]string{"decision": decision})
}

// Decide classifies one set of features and returns its label.
func (h *Handler) Decide(f Features) (string, error) {
	class, err := h.model.Classify(f.Vector())
	if err != nil {
		return "", err
	}
	if class < 0 || class >= len(Labels) {
		return "", errors.Errorf("class %d has no label", class)
	}
	return Labels[class], nil
}

func (h *Handler) badRequest(w http.ResponseWriter, id string, err error) {
	h.logger.Printf("[%s] bad request: %v", id, err)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
