package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

const (
	msgNotFound      = "Not found."
	msgInternalError = "internal server error"
	msgInvalidInput  = "Invalid input."

	// maxBodyBytes ограничение размера тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// RespondJSON пишет v в ответ с кодом status
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет {"detail": msg} с кодом status
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Detail: msg})
}

func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondValidation пишет 400 с ошибками по полям
func RespondValidation(w http.ResponseWriter, verr *domain.ValidationError) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Detail: msgInvalidInput, Errors: verr.Fields})
}

// RespondNotFound всегда отвечает одинаково, чтобы не раскрывать, что именно не найдено
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, msgNotFound)
}

func RespondConflict(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusConflict, msg)
}

func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, msg)
}

func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, msg)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// AsValidation возвращает ошибку валидации из цепочки err
func AsValidation(err error) (*domain.ValidationError, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// DecodeJSON декодирует тело запроса в v. Пустое тело допустимо и оставляет v без изменений.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}
	return nil
}

// PathID числовой идентификатор из пути, false если он не положительное целое
func PathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
