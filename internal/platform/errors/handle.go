package errors

import (
	"errors"
	"fmt"

	"github.com/louisbranch/coverings.space/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the locale used when a caller supplies none.
const DefaultLocale = "en-US"

// UserMessage renders the user-facing catalog message for a coded error in
// the given locale, falling back to en-US catalogs and, for errors without a
// code, to the error's own message.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	catalog := i18n.GetCatalog(locale)
	return catalog.Format(string(appErr.Code), appErr.Metadata)
}

// Localized prefixes a coded error with its catalog message for the given
// locale, keeping the original in the chain for errors.Is. Errors without a
// code pass through unchanged.
func Localized(err error, locale string) error {
	var appErr *Error
	if err == nil || !errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", UserMessage(err, locale), err)
}

// HandleError converts domain errors to a gRPC status for client responses.
// The status carries the grpc code mapped from the error code, an ErrorInfo
// detail with the code and metadata, and a LocalizedMessage rendered from
// the i18n catalog for the given locale (en-US when empty).
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	return status.Error(codes.Internal, "an unexpected error occurred")
}
