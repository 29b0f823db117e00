package request

// SubmitResultRequest is the body the browser game posts after each run
type SubmitResultRequest struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Height      int    `json:"height"`
	Beans       int    `json:"beans"`
}
