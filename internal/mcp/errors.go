package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/wikicore/internal/repository"
	"github.com/rpggio/wikicore/internal/wiki"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, wiki.ErrArticleNotFound), errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "ARTICLE_NOT_FOUND", Message: "article not found", RecoveryHint: "check the article id or slug"}
	case errors.Is(err, wiki.ErrEmptyTitle):
		return &APIError{Code: "EMPTY_TITLE", Message: "title must not be empty"}
	case errors.Is(err, wiki.ErrFutureRevision):
		return &APIError{Code: "FUTURE_REVISION", Message: "base revision is ahead of the article's current head", RecoveryHint: "reload the article and retry"}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "slug or revision conflict", RecoveryHint: "retry with a different slug or a fresh base revision"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
