package client

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidArgumentError carries the field violations reported by the server.
// It matches common.ErrorValidation with errors.Is.
type InvalidArgumentError struct {
	Message string
	Fields  map[string]string
}

func (e *InvalidArgumentError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *InvalidArgumentError) Unwrap() error {
	return common.ErrorValidation
}
