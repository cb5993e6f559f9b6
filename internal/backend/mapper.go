package backend

import (
	"github.com/fairway-club/clubhouse-api/internal/domain"
)

func mapProfile(row profileRow) domain.UserProfile {
	return domain.UserProfile{
		ID:             row.ID,
		FullName:       stringValue(row.FullName),
		FederationCode: stringValue(row.FederationCode),
		IDPhotoURL:     stringValue(row.IDPhotoURL),
		Email:          stringValue(row.Email),
		UpdatedAt:      stringValue(row.UpdatedAt),
		Premium:        row.IsPremium != nil && *row.IsPremium,
	}
}

func mapPlayerStats(row playerStatsRow) domain.PlayerStats {
	return domain.PlayerStats{
		ID:            row.ID,
		UserID:        row.UserID,
		HandicapIndex: row.HandicapIndex,
		TotalRounds:   row.TotalRounds,
		AverageScore:  row.AverageScore,
		BestScore:     row.BestScore,

		FairwaysHitRate: row.FairwaysHitRate,
		GIRRate:         row.GIRRate,
		AveragePutts:    row.AveragePutts,
		ScramblingRate:  row.ScramblingRate,

		TotalEagles:       row.TotalEagles,
		TotalBirdies:      row.TotalBirdies,
		TotalPars:         row.TotalPars,
		TotalBogeys:       row.TotalBogeys,
		TotalDoublesWorse: row.TotalDoublesWorse,
	}
}

func mapRound(row roundRow) domain.Round {
	return domain.Round{
		ID:             row.ID,
		UserID:         row.UserID,
		CourseName:     row.CourseName,
		CourseLocation: stringValue(row.CourseLocation),
		DatePlayed:     row.DatePlayed.Time,
		TotalScore:     row.TotalScore,
		Status:         row.Status,
	}
}

func mapProduct(row productRow) domain.Product {
	return domain.Product{
		ID:            row.ID,
		Name:          row.Name,
		Brand:         stringValue(row.Brand),
		Description:   stringValue(row.Description),
		Price:         row.Price,
		Category:      stringValue(row.Category),
		ImageURL:      stringValue(row.ImageURL),
		StockQuantity: intValue(row.StockQuantity),
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
