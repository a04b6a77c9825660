package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"kiosk-sales-api/internal/handler/httperr"
	"kiosk-sales-api/internal/infra"
	"kiosk-sales-api/internal/pkg/errs"
	"kiosk-sales-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	msgDBValidation = "Database validation error"
	msgDuplicate    = "Duplicate record"
	msgUnexpected   = "Unexpected server error"

	codeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
)

// decodeStrict rejects unknown fields and reports shape problems as payload issues.
func decodeStrict(c *gin.Context, dst any, invalidMsg string) error {
	if ct := c.GetHeader("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			return errs.NewStatusError(http.StatusUnsupportedMediaType, codeUnsupportedMedia,
				"Content-Type must be application/json", err)
		}
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return usecase.NewPayloadError(invalidMsg, []usecase.Issue{decodeIssue(err)})
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return usecase.NewPayloadError(invalidMsg, []usecase.Issue{{Message: "Body must contain a single JSON object"}})
	}
	return nil
}

func decodeIssue(err error) usecase.Issue {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return usecase.Issue{Field: typeErr.Field, Message: "Expected " + expectedKind(typeErr)}
	case errors.As(err, &syntaxErr):
		return usecase.Issue{Message: "Malformed JSON"}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return usecase.Issue{Message: "Request body is required"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return usecase.Issue{Field: field, Message: "Unrecognized key"}
	default:
		return usecase.Issue{Message: err.Error()}
	}
}

func expectedKind(e *json.UnmarshalTypeError) string {
	if e.Type == nil {
		return "value"
	}
	switch e.Type.Kind() {
	case reflect.String:
		return "string"
	case reflect.Struct:
		if e.Type.Name() == "Number" {
			return "number"
		}
		return "object"
	case reflect.Map:
		return "object"
	default:
		return e.Type.String()
	}
}

// respondError maps failures onto the response envelope. Duplicate keys are a
// client error only where the caller supplies the unique value.
func respondError(c *gin.Context, logger *slog.Logger, err error, duplicateIsConflict bool) {
	var verr *usecase.ValidationError
	var serr *errs.StatusError

	switch {
	case errors.As(err, &verr):
		var detail any
		if len(verr.Issues) > 0 {
			detail = verr.Issues
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, verr.Message(), detail)

	case errors.As(err, &serr):
		httperr.AbortWithCode(c, serr.HTTPStatus(), err, serr.Message, serr.Code, nil)

	case infra.IsKind(err, infra.KindCheckViolation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, orDefault(infra.DBMessageOf(err), msgDBValidation), nil)

	case duplicateIsConflict && infra.IsKind(err, infra.KindDuplicateKey):
		httperr.AbortWithError(c, http.StatusConflict, err, orDefault(infra.DBMessageOf(err), msgDuplicate), nil)

	default:
		logger.Error("Unhandled error",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, 12)),
		)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgUnexpected, nil)
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
