package models

// LoginEvent is an audit record of a registration or login attempt.
type LoginEvent struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Status    string `json:"status"` // "success" or "failed"
	Action    string `json:"action"` // "register" or "login"
	UserAgent string `json:"userAgent"`
	Timestamp string `json:"timestamp"`
}

// Stats summarizes stored record counts for the admin endpoint.
type Stats struct {
	Users        int64 `json:"users"`
	Documents    int64 `json:"documents"`
	LoginEvents  int64 `json:"loginHistory"`
	LoginsOK     int64 `json:"loginsSucceeded"`
	LoginsFailed int64 `json:"loginsFailed"`
}
