package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the single result object written per run. Data is present only
// on success and Error only on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success wraps a handler payload.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps an error message. An empty message is replaced so the error
// key is never dropped from the output.
func Failure(msg string) Envelope {
	if msg == "" {
		msg = "unknown error"
	}
	return Envelope{Success: false, Error: msg}
}

// ExitCode is 0 for success and 1 otherwise.
func (e Envelope) ExitCode() int {
	if e.Success {
		return 0
	}
	return 1
}

// Emit serializes env as one line of JSON to w and returns the process exit
// code. If the payload cannot be encoded, a failure envelope is written
// instead so output is never partial.
func Emit(w io.Writer, env Envelope) int {
	line, err := encode(env)
	if err != nil {
		env = Failure(fmt.Sprintf("encode result: %v", err))
		line, _ = encode(env)
	}
	_, _ = w.Write(line)
	return env.ExitCode()
}

func encode(env Envelope) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
