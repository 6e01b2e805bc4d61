package namecheap

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Argument errors, returned before any network I/O.
var (
	ErrInvalidListType   = errors.New("invalid list type")
	ErrInvalidSortBy     = errors.New("invalid sort by")
	ErrInvalidSSLType    = errors.New("invalid SSL certificate type")
	ErrMissingRegistrant = errors.New("registrant contact is required")
	ErrNoNameservers     = errors.New("at least one nameserver is required")
	ErrNoDomains         = errors.New("at least one domain is required")
)

// APIError is one <Error> element of an ApiResponse.
type APIError struct {
	Number  int    `xml:"Number,attr" json:"number"`
	Message string `xml:",chardata" json:"message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("namecheap error %d: %s", e.Number, strings.TrimSpace(e.Message))
}

// APIErrors is returned when the API reports a failed command.
type APIErrors []APIError

func (e APIErrors) Error() string {
	switch len(e) {
	case 0:
		return "namecheap: command failed without error details"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, ae := range e {
		msgs = append(msgs, ae.Error())
	}
	return strings.Join(msgs, "; ")
}

// HTTPError reports a non-2xx HTTP status from the API endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("namecheap: unexpected HTTP status %s", e.Status)
	}
	return fmt.Sprintf("namecheap: unexpected HTTP status %s: %s", e.Status, e.Body)
}

// ContactValidationError reports a contact field that is missing or malformed.
type ContactValidationError struct {
	Field   string
	Message string
}

func (e *ContactValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// IsAPIError reports whether err carries an API error with the given number.
// A number of 0 matches any API error.
func IsAPIError(err error, number int) bool {
	var ae APIErrors
	if !errors.As(err, &ae) {
		return false
	}
	if number == 0 {
		return true
	}
	for _, e := range ae {
		if e.Number == number {
			return true
		}
	}
	return false
}

// IsContactValidation reports whether err is a contact validation failure.
func IsContactValidation(err error) bool {
	var ce *ContactValidationError
	return errors.As(err, &ce)
}
