package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessTextModeIsSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(map[string]string{"k": "v"}))
	assert.Empty(t, buf.String())
}

func TestSuccessJSONEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]string{"k": "v"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestErrorTextMode(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("EMIT_ERROR", "something broke", nil))
	assert.Equal(t, "✗ EMIT_ERROR: something broke\n", buf.String())
}

func TestErrorJSONEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error("EMIT_ERROR", "something broke", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMIT_ERROR", resp.Error.Code)
	assert.Equal(t, "something broke", resp.Error.Message)
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	f.VerboseLog("loaded %d modules", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 3 modules\n", errOut.String())
}

func TestVerboseLogSuppressed(t *testing.T) {
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", ErrWriter: errOut}

	f.VerboseLog("hidden")
	assert.Empty(t, errOut.String())
}
