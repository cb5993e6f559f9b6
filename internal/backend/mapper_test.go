package backend

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestMapProfileNullColumnsBecomeZeroValues(t *testing.T) {
	id := uuid.MustParse(testUserID)
	row := profileRow{ID: id, FullName: strPtr("Ana Pérez")}

	profile := mapProfile(row)
	if profile.ID != id || profile.FullName != "Ana Pérez" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if profile.FederationCode != "" || profile.Email != "" || profile.IDPhotoURL != "" {
		t.Fatalf("nil columns should map to empty strings, got %+v", profile)
	}
	if profile.Premium {
		t.Fatal("missing is_premium should mean not premium")
	}
}

func TestMapProfilePremiumFlag(t *testing.T) {
	if p := mapProfile(profileRow{IsPremium: boolPtr(true)}); !p.Premium {
		t.Fatal("expected premium")
	}
	if p := mapProfile(profileRow{IsPremium: boolPtr(false)}); p.Premium {
		t.Fatal("expected not premium")
	}
}

func TestMapRoundCarriesDecodedDate(t *testing.T) {
	played := time.Date(2026, time.March, 2, 9, 15, 0, 0, time.UTC)
	row := roundRow{
		ID:         uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:     uuid.MustParse(testUserID),
		CourseName: "Karibana Golf Club",
		DatePlayed: wireTime{Time: played},
		TotalScore: 82,
		Status:     "completed",
	}

	round := mapRound(row)
	if !round.DatePlayed.Equal(played) {
		t.Fatalf("unexpected date %v", round.DatePlayed)
	}
	if round.CourseLocation != "" {
		t.Fatalf("nil location should map to empty string, got %q", round.CourseLocation)
	}
	if round.TotalScore != 82 || round.Status != "completed" {
		t.Fatalf("unexpected round %+v", round)
	}
}
