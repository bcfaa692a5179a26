package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter routes command output to the right writer in the right
// shape. Verbose logs go to ErrWriter so they never corrupt JSON output.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIError is the error payload of a JSON response.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLIResponse is the JSON envelope for command results.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" | "error"
	Error  *CLIError `json:"error,omitempty"`
	Data   any       `json:"data,omitempty"`
}

// VerboseLog writes a log line to ErrWriter when verbose mode is on.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.ErrWriter, format+"\n", args...)
	}
}

// Success emits an ok response. In text mode callers print their own
// summary; this only handles the JSON envelope.
func (f *OutputFormatter) Success(data any) error {
	if f.Format != "json" {
		return nil
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error emits an error response.
func (f *OutputFormatter) Error(code, message string, data any) error {
	if f.Format != "json" {
		fmt.Fprintf(f.Writer, "✗ %s: %s\n", code, message)
		return nil
	}
	return f.encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message},
		Data:   data,
	})
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
