package backend

import "time"

const (
	defaultHTTPTimeout = 10 * time.Second

	headerAPIKey = "apikey"
	headerPrefer = "Prefer"

	// preferReturnRepresentation asks the REST endpoint to echo inserted
	// rows so the client can read server-assigned ids.
	preferReturnRepresentation = "return=representation"

	idDocumentBucket = "id-documents"

	tableProfiles    = "profiles"
	tablePlayerStats = "player_stats"
	tableRounds      = "rounds"
	tableHoleScores  = "hole_scores"
	tableProducts    = "products"
)
