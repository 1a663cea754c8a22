package types

// Envelope is the response shape shared by every endpoint: success is
// always present, data and message only when set.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
