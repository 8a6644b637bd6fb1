package companion

import "github.com/google/uuid"

// WeatherRequestKey is the sentinel key of the outbound weather request.
const WeatherRequestKey = "0"

// Request is one outbound message. ID only travels as a header; the
// companion sees just the payload.
type Request struct {
	ID      string
	Payload map[string]int
}

// NewWeatherRequest asks the companion to fetch and send current weather.
func NewWeatherRequest() Request {
	return Request{
		ID:      uuid.New().String(),
		Payload: map[string]int{WeatherRequestKey: 0},
	}
}
