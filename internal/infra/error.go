package infra

import (
	"errors"
	"log/slog"

	"kiosk-sales-api/internal/pkg/errs"

	"github.com/go-sql-driver/mysql"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind      RepositoryErrorKind
	msg       string
	dbMessage string
	err       error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// DBMessage is the message the server attached to the error, if any.
func (e RepositoryError) DBMessage() string {
	return e.dbMessage
}

// Infrastructure-specific error kinds
const (
	KindNotFound       RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure      RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey   RepositoryErrorKind = "DUPLICATE_KEY"
	KindCheckViolation RepositoryErrorKind = "CHECK_VIOLATION"
)

const (
	signalSQLState      = "45000"
	errnoSignal         = 1644
	errnoDuplicateEntry = 1062
)

// WrapRepoErr classifies a driver error and logs it. Business signals raised by
// stored procedures are logged at warn level since they surface as 4xx.
func WrapRepoErr(logger *slog.Logger, msg string, err error) error {
	kind, dbMessage := Classify(err)
	return newRepoErr(logger, kind, msg, dbMessage, err)
}

func NewRepoErr(logger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	return newRepoErr(logger, kind, msg, "", err)
}

func newRepoErr(logger *slog.Logger, kind RepositoryErrorKind, msg, dbMessage string, err error) error {
	if logger == nil {
		logger = slog.Default()
	}
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	switch kind {
	case KindCheckViolation, KindDuplicateKey:
		logger.Warn("Repository error: "+msg, logArgs...)
	default:
		logger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, dbMessage: dbMessage, err: err}
}

// Classify maps MySQL error conventions onto repository kinds: SIGNAL with
// SQLSTATE 45000 (errno 1644) is a validation failure raised by a procedure,
// errno 1062 is a unique key collision.
func Classify(err error) (RepositoryErrorKind, string) {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return KindDBFailure, ""
	}
	switch {
	case string(myErr.SQLState[:]) == signalSQLState || myErr.Number == errnoSignal:
		return KindCheckViolation, myErr.Message
	case myErr.Number == errnoDuplicateEntry:
		return KindDuplicateKey, myErr.Message
	default:
		return KindDBFailure, ""
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// DBMessageOf returns the server message carried by a repository error.
func DBMessageOf(err error) string {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.dbMessage
	}
	return ""
}

// EnsureRepoErr wraps err unless a repository already classified it.
func EnsureRepoErr(logger *slog.Logger, msg string, err error) error {
	if err == nil {
		return nil
	}
	var e RepositoryError
	if errors.As(err, &e) {
		return err
	}
	return WrapRepoErr(logger, msg, err)
}
