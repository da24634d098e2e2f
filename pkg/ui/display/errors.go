package display

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

// ErrorView is the structured form of an error, as printed to the user.
type ErrorView struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// FromError extracts the code and details of an agentlink error. Other
// errors only carry their message.
func FromError(err error) ErrorView {
	v := ErrorView{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		v.Code = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		v.Details = details
	}
	return v
}

// DetailLines renders details as sorted "key: value" lines.
func (v ErrorView) DetailLines() []string {
	keys := make([]string, 0, len(v.Details))
	for k := range v.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, v.Details[k]))
	}
	return lines
}
