package domain

import (
	apperrors "github.com/louisbranch/coverings.space/internal/platform/errors"
)

// handleError converts tower service errors into gRPC statuses carrying the
// error code and a localized user message, which is what tool callers see.
//
// TODO: Negotiate the locale with the client once the MCP transport carries
// one; until then responses use the default locale.
func handleError(err error) error {
	return apperrors.HandleError(err, apperrors.DefaultLocale)
}
