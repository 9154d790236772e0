package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
)

const (
	// maxBodySize тела запросов API маленькие
	maxBodySize = 1 << 20

	msgInternalError = "Something went wrong. Please try again."
)

// ErrEmptyBody возвращается DecodeJSON для пустого тела запроса
var ErrEmptyBody = errors.New("request body is empty")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Code    string          `json:"code,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// DecodeOptionalJSON как DecodeJSON, но пустое тело не считается ошибкой
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil && !errors.Is(err, ErrEmptyBody) {
		return err
	}
	return nil
}

// RespondJSON пишет data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку в едином формате {success:false, error}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500 без подробностей; детали только в логах
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondGatewayError ответ на ошибку платежного шлюза
// Отказ шлюза (4xx или ответ без ссылки) - 400, недоступность - 502; сырой ответ шлюза передается в raw
func RespondGatewayError(w http.ResponseWriter, err error, fallback string) {
	resp := ErrorResponse{Success: false, Error: fallback}
	status := http.StatusBadGateway

	var apiErr *cashfree.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			resp.Error = apiErr.Message
		}
		resp.Raw = rawJSON(apiErr.Body)
		if !apiErr.Retryable() {
			status = http.StatusBadRequest
		}
	}

	RespondJSON(w, status, resp)
}

// QueryBool разбирает флаг из query string ("true", "1", "yes")
func QueryBool(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// rawJSON возвращает тело как есть, если это JSON, иначе как JSON-строку
func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}
