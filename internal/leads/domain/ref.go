package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ref identifies a lead from the visitor's point of view. It is either the
// persisted lead id or a synthetic identifier issued when the store was
// unavailable. Synthetic refs never reach the interaction store.
type Ref string

const (
	offlinePrefix = "offline-"
	localPrefix   = "local-"
)

// NewPersistedRef wraps a stored lead id.
func NewPersistedRef(id uuid.UUID) Ref {
	return Ref(id.String())
}

// NewOfflineRef issues a synthetic ref derived from the failure time.
func NewOfflineRef(now time.Time) Ref {
	return Ref(offlinePrefix + strconv.FormatInt(now.UnixMilli(), 10))
}

// NewLocalRef issues a synthetic ref for sessions created without any store.
func NewLocalRef(now time.Time) Ref {
	return Ref(localPrefix + strconv.FormatInt(now.UnixMilli(), 10))
}

// IsSynthetic reports whether the ref is in the offline or local namespace.
func (r Ref) IsSynthetic() bool {
	s := string(r)
	return strings.HasPrefix(s, offlinePrefix) || strings.HasPrefix(s, localPrefix)
}

// LeadID returns the persisted lead id. ok is false for synthetic or
// malformed refs.
func (r Ref) LeadID() (id uuid.UUID, ok bool) {
	if r == "" || r.IsSynthetic() {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(string(r))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (r Ref) String() string { return string(r) }
