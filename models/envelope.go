package models

import "encoding/json"

// ErrorKind classifies the failure source of an envelope so callers can
// tell a timeout from a rejected request without a second error path
type ErrorKind string

// Envelope failure kinds
const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindTimeout ErrorKind = "timeout"
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindServer  ErrorKind = "server"
	ErrorKindDecode  ErrorKind = "decode"
)

// Envelope is the uniform result shape for every remote call. Components
// branch on Success only; Error and Kind describe the failure when it is
// false.
type Envelope struct {
	Success bool
	Data    json.RawMessage
	Error   string
	Kind    ErrorKind
}

// OK wraps a successful response body
func OK(data json.RawMessage) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps a failure of the given kind
func Fail(kind ErrorKind, message string) Envelope {
	return Envelope{Success: false, Error: message, Kind: kind}
}
