package iojson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"total": 2}))
	assert.Equal(t, "{\n  \"total\": 2\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"message":"marshal output"`)
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("catalog is invalid", map[string]any{"source": "a.yaml"})
	assert.JSONEq(t, `{"message":"catalog is invalid","data":{"source":"a.yaml"}}`, got)
}

func TestMarshalError_NoData(t *testing.T) {
	got := MarshalError("no input", nil)
	assert.JSONEq(t, `{"message":"no input"}`, got)
}

func TestMarshalError_Unmarshalable(t *testing.T) {
	got := MarshalError("bad", map[string]any{"ch": make(chan int)})
	assert.Contains(t, got, `"json_error"`)
	assert.Contains(t, got, `"message":"bad"`)
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "catalog is invalid", map[string]any{"source": "a.yaml"}))
	assert.JSONEq(t, `{"message":"catalog is invalid","data":{"source":"a.yaml"}}`, buf.String())
}

func TestFallbackError_Escapes(t *testing.T) {
	got := fallbackError(`bad "msg"`, errors.New(`bad "err"`))
	assert.JSONEq(t, `{"message":"bad \"msg\"","data":{"json_error":"bad \"err\""}}`, got)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte(`["1","2"]`), 0o644))

	fr := FileReader[[]string]{fileFlagValue: path}
	ids, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestFileReader_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	fr := FileReader[[]string]{fileFlagValue: path}
	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestFileReader_Flag(t *testing.T) {
	fr := FileReader[[]string]{}
	flag := fr.Flag()
	assert.Equal(t, "file", flag.Name)
	assert.Equal(t, []string{"f"}, flag.Aliases)
}
