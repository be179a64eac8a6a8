package domain

var (
	MessageSuccessGetAlerts = "alerts retrieved successfully"
	MessageFailedGetAlerts  = "failed to retrieve alerts"
)

type AlertResponse struct {
	MemberID     string `json:"member_id"`
	IngredientID string `json:"ingredient_id"`
	Comment      string `json:"comment"`
	IsDanger     bool   `json:"is_danger"`
}
