// Package errclass maps infrastructure errors from the relational store and
// the object store onto a small set of kinds, so callers can decide between
// the durable path and the local fallback in one place.
package errclass

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the class of an infrastructure error.
type Kind int

const (
	Unknown Kind = iota
	RelationNotFound
	InvalidInput
	BucketNotFound
	AccessDenied
	BadRequest
	ObjectNotFound
	Timeout
)

// Postgres SQLSTATE codes.
const (
	pgUndefinedTable     = "42P01"
	pgInvalidTextRepr    = "22P02"
	pgInsufficientPrivil = "42501"
)

func (k Kind) String() string {
	switch k {
	case RelationNotFound:
		return "relation_not_found"
	case InvalidInput:
		return "invalid_input"
	case BucketNotFound:
		return "bucket_not_found"
	case AccessDenied:
		return "access_denied"
	case BadRequest:
		return "bad_request"
	case ObjectNotFound:
		return "object_not_found"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// statusCoder is satisfied by *smithyhttp.ResponseError and the AWS wrappers
// embedding it.
type statusCoder interface {
	HTTPStatusCode() int
}

var _ statusCoder = (*smithyhttp.ResponseError)(nil)

// Classify returns the kind of err. Nil and unrecognized errors are Unknown.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return RelationNotFound
		case pgInvalidTextRepr:
			return InvalidInput
		case pgInsufficientPrivil:
			return AccessDenied
		}
		return Unknown
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return BucketNotFound
		case "AccessDenied", "Forbidden":
			return AccessDenied
		case "NoSuchKey", "NotFound":
			return ObjectNotFound
		}
	}

	var respErr statusCoder
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusForbidden:
			return AccessDenied
		case http.StatusNotFound:
			return ObjectNotFound
		case http.StatusBadRequest:
			return BadRequest
		}
	}

	if errors.Is(err, common.ErrorNotFound) {
		return ObjectNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return RelationNotFound
	case strings.Contains(msg, "invalid input syntax"):
		return InvalidInput
	case strings.Contains(msg, "row-level security"):
		return AccessDenied
	}

	return Unknown
}

// Recognized reports whether err is one of the conditions the photo and RSVP
// flows absorb instead of surfacing: a missing table, a rejected id, a missing
// bucket, a policy denial or an object store bad request.
func Recognized(err error) bool {
	switch Classify(err) {
	case RelationNotFound, InvalidInput, BucketNotFound, AccessDenied, BadRequest:
		return true
	}
	return false
}
