package metrics

// Attribute keys shared by the otel instruments.
const (
	AttrOperation = "operation"
)

// Operation names recorded by the backend client. Kept here so
// dashboards and tests agree on the labels.
const (
	OpSignUp           = "sign_up"
	OpSignIn           = "sign_in"
	OpSignOut          = "sign_out"
	OpFetchProfile     = "fetch_profile"
	OpUpdateProfile    = "update_profile"
	OpFetchPlayerStats = "fetch_player_stats"
	OpFetchRounds      = "fetch_rounds"
	OpSaveRound        = "save_round"
	OpFetchProducts    = "fetch_products"
	OpSaveProduct      = "save_product"
	OpUploadIDDocument = "upload_id_document"
)
