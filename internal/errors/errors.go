// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервисного слоя (или транспорта), на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный code и безопасное message без утечки деталей.
//
// Доменные ошибки отдаются текстом конкретного sentinel'а, чтобы SPA показывала его как есть.
// Для 500 детали остаются только в логах.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pribylovaa/review-comments/internal/auth"
	"github.com/pribylovaa/review-comments/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Ошибки транспорта, не относящиеся к сервисному слою.
var (
	ErrUnauthenticated = errors.New("missing or malformed bearer token")
	ErrRateLimited     = errors.New("too many requests")
	ErrBadRequest      = errors.New("malformed request")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// sentinels — конкретные ошибки сервиса, чей текст можно отдать клиенту.
var sentinels = []error{
	service.ErrInvalidArgument,
	service.ErrUnknownType,
	service.ErrEmptyContent,
	service.ErrContentTooLong,
	service.ErrInvalidParent,
	service.ErrInvalidCursor,
	service.ErrUnknownRole,
	service.ErrNoRevisionAccess,
	service.ErrTypeNotAllowed,
	service.ErrCannotComment,
	service.ErrCannotResolve,
	service.ErrNotAuthor,
	service.ErrCannotHide,
	service.ErrCommentNotVisible,
	service.ErrRevisionNotFound,
	service.ErrCommentNotFound,
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не маскировать баг;
//   - категории сервиса: ErrValidation -> 400, ErrForbidden -> 403, ErrNotFound -> 404;
//   - ошибки auth/транспорта: 401, 429, 400;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - прочее -> 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthenticated", "token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited", ErrRateLimited.Error()
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "validation_error", ErrBadRequest.Error()
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "validation_error", message(err, service.ErrValidation)
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden", message(err, service.ErrForbidden)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", message(err, service.ErrNotFound)
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// message — текст конкретного sentinel'а без префикса op и категории.
func message(err, category error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return strings.TrimPrefix(s.Error(), category.Error()+": ")
		}
	}

	return category.Error()
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
