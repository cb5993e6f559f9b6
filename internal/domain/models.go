package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoundStatusCompleted is the status the client stamps on rounds it creates.
const RoundStatusCompleted = "completed"

// UserProfile is the club member profile row. Optional columns map to
// zero values when the backend returns null.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"fullName,omitempty"`
	FederationCode string    `json:"federationCode,omitempty"`
	IDPhotoURL     string    `json:"idPhotoUrl,omitempty"`
	Email          string    `json:"email,omitempty"`
	UpdatedAt      string    `json:"updatedAt,omitempty"`
	Premium        bool      `json:"premium,omitempty"`
}

// PlayerStats is the server-computed aggregate over a member's rounds.
// It does not exist until at least one round has been recorded.
type PlayerStats struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	HandicapIndex float64   `json:"handicapIndex"`
	TotalRounds   int       `json:"totalRounds"`
	AverageScore  float64   `json:"averageScore"`
	BestScore     int       `json:"bestScore"`

	FairwaysHitRate float64 `json:"fairwaysHitRate"`
	GIRRate         float64 `json:"girRate"`
	AveragePutts    float64 `json:"averagePutts"`
	ScramblingRate  float64 `json:"scramblingRate"`

	TotalEagles       int `json:"totalEagles"`
	TotalBirdies      int `json:"totalBirdies"`
	TotalPars         int `json:"totalPars"`
	TotalBogeys       int `json:"totalBogeys"`
	TotalDoublesWorse int `json:"totalDoublesWorse"`
}

// Round is one completed play-through of a course.
type Round struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	CourseName     string    `json:"courseName"`
	CourseLocation string    `json:"courseLocation,omitempty"`
	DatePlayed     time.Time `json:"datePlayed"`
	TotalScore     int       `json:"totalScore"`
	Status         string    `json:"status"`
}

// HoleScore is one hole's result within a round. It is submitted as a
// batch alongside round creation and never read back individually.
type HoleScore struct {
	RoundID    uuid.UUID `json:"roundId"`
	HoleNumber int       `json:"holeNumber"`
	Score      int       `json:"score"`
	Par        int       `json:"par"`
}

// Product is a pro-shop catalog entry.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand,omitempty"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Category      string    `json:"category,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	StockQuantity int       `json:"stockQuantity,omitempty"`
}
