// Package apierror renders the uniform JSON error envelope shared by every
// endpoint and middleware.
package apierror

import (
	"encoding/json"
	"net/http"
	"time"
)

// TimestampLayout is the envelope timestamp format, seconds precision and no
// zone suffix.
const TimestampLayout = "2006-01-02T15:04:05"

// Fixed messages for rejections that must not leak detail.
const (
	MessageMissingToken     = "AUTENTICACIÓN REQUERIDA PARA ACCEDER A ESTE RECURSO"
	MessageInsufficientRole = "NO TIENE PERMISOS PARA ACCEDER A ESTE RECURSO"
	MessageInternal         = "HA OCURRIDO UN ERROR INTERNO EN EL SERVIDOR"
	MessageMalformedBody    = "EL CUERPO DE LA PETICIÓN NO ES VÁLIDO"
)

// Response is the wire shape of every error the service returns.
type Response struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// Write renders the envelope for a request. The error field carries the HTTP
// reason phrase; the message carries the upper-case human text.
func Write(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Timestamp: time.Now().Format(TimestampLayout),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.RequestURI(),
	})
}
