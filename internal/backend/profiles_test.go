package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fairway-club/clubhouse-api/internal/session"
)

const testUserID = "7f8d2c3a-1b4e-4d6f-8a9b-0c1d2e3f4a5b"

func TestFetchProfileWithoutSessionFailsWithAuthError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request should be issued without a session")
		return nil, nil
	}, session.NewMemStore())

	_, err := client.FetchProfile(context.Background())
	if _, ok := AsAuthError(err); !ok {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	// Never a network or decoding failure for a local precondition.
	if _, ok := AsNetworkError(err); ok {
		t.Fatal("must not be a NetworkError")
	}
	if _, ok := AsDecodeError(err); ok {
		t.Fatal("must not be a DecodeError")
	}
}

func TestFetchProfileFiltersByCurrentUser(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/rest/v1/profiles" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("id") != "eq."+testUserID {
			t.Fatalf("expected id filter, got %q", q.Get("id"))
		}
		if q.Get("select") != "*" {
			t.Fatalf("expected select=*, got %q", q.Get("select"))
		}
		if auth := req.Header.Get("Authorization"); auth != "Bearer tok-123" {
			t.Fatalf("expected bearer token, got %q", auth)
		}
		if key := req.Header.Get("apikey"); key != "anon-key" {
			t.Fatalf("expected apikey header, got %q", key)
		}
		body := `[{
			"id": "` + testUserID + `",
			"full_name": "Ana Pérez",
			"federation_code": "COL-4471",
			"id_photo_url": null,
			"email": "golfer@example.com",
			"updated_at": "2026-03-01T12:30:00.123456",
			"is_premium": true
		}]`
		return jsonResponse(http.StatusOK, body), nil
	}, signedInStore(t, testUserID))

	profile, err := client.FetchProfile(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if profile.ID.String() != testUserID {
		t.Fatalf("profile id %s does not match signed-in user %s", profile.ID, testUserID)
	}
	if profile.FullName != "Ana Pérez" || profile.FederationCode != "COL-4471" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if profile.IDPhotoURL != "" {
		t.Fatalf("null column should map to empty string, got %q", profile.IDPhotoURL)
	}
	if !profile.Premium {
		t.Fatal("expected premium flag")
	}
}

func TestFetchProfileEmptyResultIsNotFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[]`), nil
	}, signedInStore(t, testUserID))

	_, err := client.FetchProfile(context.Background())
	notFound, ok := AsNotFoundError(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Resource != "profile" {
		t.Fatalf("unexpected resource %q", notFound.Resource)
	}
}

func TestUpdateProfilePatchesListedFields(t *testing.T) {
	var captured map[string]string
	var method string

	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		method = req.Method
		if q := req.URL.Query().Get("id"); q != "eq."+testUserID {
			t.Fatalf("expected id filter, got %q", q)
		}
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Fatalf("decode patch: %v", err)
		}
		return jsonResponse(http.StatusNoContent, ``), nil
	}, signedInStore(t, testUserID))

	err := client.UpdateProfile(context.Background(), testUserID, UpdateProfileInput{
		FullName:       "Ana María Pérez",
		FederationCode: "COL-4471",
		Email:          "ana@example.com",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if method != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", method)
	}
	if captured["full_name"] != "Ana María Pérez" || captured["email"] != "ana@example.com" {
		t.Fatalf("unexpected patch %+v", captured)
	}
	if captured["updated_at"] == "" {
		t.Fatal("patch must carry an updated_at timestamp")
	}
	if _, err := parseTimestamp(captured["updated_at"]); err != nil {
		t.Fatalf("updated_at not in a decodable format: %v", err)
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	client := newTestClient(nil, session.NewMemStore())
	err := client.UpdateProfile(context.Background(), testUserID, UpdateProfileInput{FullName: "Ana"})
	if _, ok := AsAuthError(err); !ok {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestFetchPlayerStatsEmptyAndMalformedAreIndistinguishable(t *testing.T) {
	bodies := []string{
		`[]`,                             // no rounds yet
		`{"not":"a list"}`,               // malformed shape
		`[{"handicap_index":"corrupt"}]`, // corrupted field types
	}
	for _, body := range bodies {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		}, signedInStore(t, testUserID))

		stats, err := client.FetchPlayerStats(context.Background(), testUserID)
		if err != nil {
			t.Fatalf("body %q: expected no error, got %v", body, err)
		}
		if stats != nil {
			t.Fatalf("body %q: expected no stats, got %+v", body, stats)
		}
	}
}

func TestFetchPlayerStatsMapsRow(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if q := req.URL.Query().Get("user_id"); q != "eq."+testUserID {
			t.Fatalf("expected user_id filter, got %q", q)
		}
		body := `[{
			"id": "11111111-2222-3333-4444-555555555555",
			"user_id": "` + testUserID + `",
			"handicap_index": 12.4,
			"total_rounds": 18,
			"average_score": 84.2,
			"best_score": 76,
			"fairways_hit_rate": 0.61,
			"gir_rate": 0.44,
			"average_putts": 31.5,
			"scrambling_rate": 0.38,
			"total_eagles": 1,
			"total_birdies": 22,
			"total_pars": 120,
			"total_bogeys": 96,
			"total_doubles_worse": 41
		}]`
		return jsonResponse(http.StatusOK, body), nil
	}, signedInStore(t, testUserID))

	stats, err := client.FetchPlayerStats(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.HandicapIndex != 12.4 || stats.TotalRounds != 18 || stats.BestScore != 76 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.UserID.String() != testUserID {
		t.Fatalf("unexpected user id %s", stats.UserID)
	}
}

func TestFetchPlayerStatsRequiresSession(t *testing.T) {
	client := newTestClient(nil, session.NewMemStore())
	_, err := client.FetchPlayerStats(context.Background(), testUserID)
	if _, ok := AsAuthError(err); !ok {
		t.Fatalf("expected AuthError, got %v", err)
	}
}
