package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version of the response envelope. The browser
// UI checks this field, named exactly "v", before parsing the rest.
const envelopeVersion = 1

// EnvelopeTransformer wraps every huma response body in the shared envelope:
// successes carry the payload under "data", simple errors carry a flat
// "error" string, and coded errors additionally expose code/message/details.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		out := map[string]any{
			"v":       envelopeVersion,
			"success": false,
			"error":   apiErr.Message,
		}
		if apiErr.Code != "" {
			out["code"] = apiErr.Code
			out["message"] = apiErr.Message
		}
		if apiErr.Details != nil {
			out["details"] = apiErr.Details
		}
		return out, nil
	}

	return map[string]any{
		"v":       envelopeVersion,
		"success": strings.HasPrefix(status, "2"),
		"data":    v,
	}, nil
}
