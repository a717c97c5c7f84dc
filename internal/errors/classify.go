package errors

import (
	stderrors "errors"

	"github.com/vango-dev/hashroute/internal/config"
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/manifest"
	"github.com/vango-dev/hashroute/pkg/router"
)

// sentinels maps package errors to codes. Order matters: the first match wins.
var sentinels = []struct {
	err  error
	code string
}{
	{router.ErrNoDefaultRoute, "E001"},
	{fragment.ErrTooManySegments, "E002"},
	{fragment.ErrInvalidPercentEscape, "E003"},
	{manifest.ErrDecode, "E010"},
	{manifest.ErrUnknownController, "E011"},
	{manifest.ErrDuplicateName, "E012"},
	{manifest.ErrTemplate, "E013"},
	{manifest.ErrSource, "E014"},
	{manifest.ErrMissingPath, "E015"},
	{manifest.ErrDuplicatePath, "E016"},
	{config.ErrInvalid, "E020"},
}

// Classify returns err as an *Error. An *Error in the chain is returned
// as is; known sentinels get their code; anything else becomes an
// uncoded runtime error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return New(s.code).Wrap(err)
		}
	}
	return &Error{
		Category: CategoryRuntime,
		Message:  err.Error(),
	}
}

// Code returns the code Classify assigns to err, or "unknown".
func Code(err error) string {
	e := Classify(err)
	if e == nil || e.Code == "" {
		return "unknown"
	}
	return e.Code
}
