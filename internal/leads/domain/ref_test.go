package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPersistedRef(t *testing.T) {
	id := uuid.New()
	ref := NewPersistedRef(id)

	if ref.IsSynthetic() {
		t.Fatalf("persisted ref must not be synthetic")
	}
	got, ok := ref.LeadID()
	if !ok || got != id {
		t.Fatalf("expected lead id %s, got %s (ok=%v)", id, got, ok)
	}
}

func TestSyntheticRefs(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	offline := NewOfflineRef(now)
	if offline.String() != "offline-1712345678901" {
		t.Fatalf("unexpected offline ref %q", offline)
	}

	for _, ref := range []Ref{offline, NewLocalRef(now), Ref("local-abc")} {
		if !ref.IsSynthetic() {
			t.Fatalf("expected %q to be synthetic", ref)
		}
		if _, ok := ref.LeadID(); ok {
			t.Fatalf("synthetic ref %q must not yield a lead id", ref)
		}
	}
}

func TestMalformedRef(t *testing.T) {
	for _, ref := range []Ref{"", "not-a-uuid"} {
		if _, ok := ref.LeadID(); ok {
			t.Fatalf("expected %q to be rejected", ref)
		}
	}
}

func TestApplyOverwritesProfile(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	lead := NewLead(uuid.New(), Submission{
		Name:  "Asha",
		Phone: "9876543210",
		Email: "asha@example.com",
		Profile: Profile{
			Location:         "Chennai",
			PreferredCollege: "IIT Madras",
		},
	}, created)

	later := created.Add(time.Hour)
	lead.Apply(Submission{Name: "Asha K", Phone: "9876543210", Email: "asha.k@example.com"}, later)

	if lead.Name != "Asha K" || lead.Email != "asha.k@example.com" {
		t.Fatalf("identity fields not overwritten: %+v", lead)
	}
	if lead.Profile.Location != "" || lead.Profile.PreferredCollege != "" {
		t.Fatalf("expected optional fields to be cleared, got %+v", lead.Profile)
	}
	if !lead.CreatedAt.Equal(created) || !lead.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected timestamps: created=%s updated=%s", lead.CreatedAt, lead.UpdatedAt)
	}
}
