package store

import (
	"regexp"
	"time"

	"github.com/alexdb/alexdb/internal/store/value"
	"github.com/google/uuid"
)

// keyPattern is the regex every record key must match, verbatim from
// the spec.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._~!$&'()*+,;=:@/?-]+$`)

// ValidateKey reports a *Error with KindValidationFailed if key does
// not match the required pattern.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return wrapErr(KindValidationFailed, "invalid key", nil)
	}
	return nil
}

// Record is the stored envelope: identity, key, value and timestamps.
type Record struct {
	ID        uuid.UUID   `json:"id"`
	Key       string      `json:"key"`
	Value     value.Value `json:"value"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	DeleteAt  *time.Time  `json:"delete_at,omitempty"`
}

// Response is the public {key, value} projection returned by every
// successful operation.
type Response struct {
	Key   string      `json:"key"`
	Value value.Value `json:"value"`
}

// ToResponse projects a Record to its public view.
func (r Record) ToResponse() Response {
	return Response{Key: r.Key, Value: r.Value}
}

// deleteAtFor computes delete_at from created_at and an optional TTL
// in seconds, per invariant 4.
func deleteAtFor(createdAt time.Time, ttl *int64) *time.Time {
	if ttl == nil {
		return nil
	}
	at := createdAt.Add(time.Duration(*ttl) * time.Second)
	return &at
}

// expired reports whether r's delete_at has passed as of now. Used
// defensively by List (GC may lag) and authoritatively by the GC loop.
func (r Record) expired(now time.Time) bool {
	return r.DeleteAt != nil && !r.DeleteAt.After(now)
}
