package receipts

import "time"

// Config параметры подключения к Storage API
type Config struct {
	BaseURL          string
	ServiceKey       string
	Bucket           string
	Timeout          time.Duration
	FailureThreshold int64
}

// removeRequest тело запроса удаления объектов
type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

// ErrorResponse модель ошибки Storage API
type ErrorResponse struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}
