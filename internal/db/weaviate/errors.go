package weaviate

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"

	"github.com/kailas-cloud/vecprovision/internal/db"
	"github.com/kailas-cloud/vecprovision/internal/domain"
)

// mapError translates client errors into db and domain sentinels, keeping the original message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var werr *fault.WeaviateClientError
	if errors.As(err, &werr) {
		switch {
		case werr.StatusCode == http.StatusUnauthorized, werr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		case werr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %w", db.ErrClassNotFound, err)
		case werr.StatusCode == http.StatusUnprocessableEntity && isAlreadyExists(werr.Msg):
			return fmt.Errorf("%w: %w", db.ErrClassExists, err)
		case werr.StatusCode == http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)
		case werr.StatusCode == http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		case !werr.IsUnexpectedStatusCode && werr.DerivedFromError != nil && isTransport(werr.DerivedFromError):
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}
		return err
	}

	if isTransport(err) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

func isAlreadyExists(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "already exists")
}

func isTransport(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
