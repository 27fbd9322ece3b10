package sidebar

import (
	stderrors "errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Issue is a single problem found while building a tree.
type Issue struct {
	// Path locates the entry, e.g. "sidebar[8].items[0].items[23]".
	Path    string
	Message string
	// DocID is set for issues about a specific document reference.
	DocID string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError reports every problem found in a raw tree. Build returns
// it wrapped in a validation-category ClassifiedError.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid sidebar tree"
	case 1:
		return e.Issues[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d problems:", len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// IsValidation reports whether err carries a sidebar ValidationError.
func IsValidation(err error) bool {
	_, ok := AsValidation(err)
	return ok
}

// AsValidation extracts the ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if stderrors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func newValidationFailure(issues []Issue) error {
	return errors.WrapError(&ValidationError{Issues: issues}, errors.CategoryValidation, "invalid sidebar tree").
		Fatal().
		WithContext("issues", len(issues)).
		Build()
}
