package backend

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// wireTime decodes the backend's timestamp variants and encodes the
// canonical fractional-seconds UTC form.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(formatTimestamp(t.Time))
}

// Identity endpoint payloads.

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     signUpMetadata `json:"data"`
}

type signUpMetadata struct {
	FullName       string `json:"full_name"`
	FederationCode string `json:"federation_code"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID string `json:"id"`
}

type signUpResponse struct {
	User *authUser `json:"user"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	User        *authUser `json:"user"`
}

// authErrorBody covers the message field variants the identity and REST
// endpoints use in error responses.
type authErrorBody struct {
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

// REST table rows. Field names on the wire are snake_case.

type profileRow struct {
	ID             uuid.UUID `json:"id"`
	FullName       *string   `json:"full_name"`
	FederationCode *string   `json:"federation_code"`
	IDPhotoURL     *string   `json:"id_photo_url"`
	Email          *string   `json:"email"`
	UpdatedAt      *string   `json:"updated_at"`
	IsPremium      *bool     `json:"is_premium"`
}

type profilePatch struct {
	FullName       string `json:"full_name"`
	FederationCode string `json:"federation_code"`
	Email          string `json:"email"`
	UpdatedAt      string `json:"updated_at"`
}

type playerStatsRow struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	HandicapIndex float64   `json:"handicap_index"`
	TotalRounds   int       `json:"total_rounds"`
	AverageScore  float64   `json:"average_score"`
	BestScore     int       `json:"best_score"`

	FairwaysHitRate float64 `json:"fairways_hit_rate"`
	GIRRate         float64 `json:"gir_rate"`
	AveragePutts    float64 `json:"average_putts"`
	ScramblingRate  float64 `json:"scrambling_rate"`

	TotalEagles       int `json:"total_eagles"`
	TotalBirdies      int `json:"total_birdies"`
	TotalPars         int `json:"total_pars"`
	TotalBogeys       int `json:"total_bogeys"`
	TotalDoublesWorse int `json:"total_doubles_worse"`
}

type roundRow struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	CourseName     string    `json:"course_name"`
	CourseLocation *string   `json:"course_location"`
	DatePlayed     wireTime  `json:"date_played"`
	TotalScore     int       `json:"total_score"`
	Status         string    `json:"status"`
}

type roundInsert struct {
	UserID     string `json:"user_id"`
	CourseName string `json:"course_name"`
	DatePlayed string `json:"date_played"`
	TotalScore int    `json:"total_score"`
	Status     string `json:"status"`
}

type holeScoreInsert struct {
	RoundID    string `json:"round_id"`
	HoleNumber int    `json:"hole_number"`
	Score      int    `json:"score"`
	Par        int    `json:"par"`
}

type productRow struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         *string   `json:"brand"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	Category      *string   `json:"category"`
	ImageURL      *string   `json:"image_url"`
	StockQuantity *int      `json:"stock_quantity"`
}

type productInsert struct {
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	StockQuantity int     `json:"stock_quantity,omitempty"`
}
