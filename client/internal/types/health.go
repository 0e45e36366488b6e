package types

import "encoding/json"

// Values reported when the backend cannot be reached.
const (
	HealthStatusError          = "error"
	MessageBackendNotReachable = "Backend not reachable"
)

// HealthStatus is the outcome of a health check. It is either the decoded
// backend body (Raw set) or the unreachable variant (Raw nil).
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Raw     Result `json:"-"`
}

// Unreachable returns the status reported when no JSON answer was received.
func Unreachable() HealthStatus {
	return HealthStatus{Status: HealthStatusError, Message: MessageBackendNotReachable}
}

// ParseHealth decodes a health body. Bodies that are not valid JSON yield
// Unreachable; valid JSON of another shape keeps Raw with empty fields.
func ParseHealth(body []byte) HealthStatus {
	if !json.Valid(body) {
		return Unreachable()
	}
	var hs HealthStatus
	_ = json.Unmarshal(body, &hs)
	hs.Raw = Result(body)
	return hs
}

// Reachable reports whether the backend answered with a JSON body.
func (h HealthStatus) Reachable() bool { return h.Raw != nil }

// MarshalJSON emits the backend body when there is one, else the
// unreachable object.
func (h HealthStatus) MarshalJSON() ([]byte, error) {
	if h.Raw != nil {
		return h.Raw, nil
	}
	type plain HealthStatus
	return json.Marshal(plain(h))
}
