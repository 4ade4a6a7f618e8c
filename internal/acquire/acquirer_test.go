package acquire

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	m.Run()
}

type fakeHTTPClient struct {
	responses map[string]string
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	body, ok := f.responses[req.URL.Path]
	status := 200
	if !ok {
		status = 404
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}, nil
}

func metaClient(jar string) *fakeHTTPClient {
	responses := make(map[string]string)
	responses["/v2/versions/loader/1.21.1"] = `[
		{"loader":{"version":"0.17.0-beta","stable":false}},
		{"loader":{"version":"0.16.9","stable":true}}
	]`
	responses["/v2/versions/installer"] = `[{"version":"1.0.1","stable":true}]`
	responses["/v2/versions/loader/1.21.1/0.16.9/1.0.1/server/jar"] = jar
	responses["/v2/versions/loader/1.21.1/0.15.0/1.0.1/server/jar"] = jar
	return &fakeHTTPClient{responses: responses}
}

func TestMetaAcquirer_FetchLatest(t *testing.T) {
	installDir := t.TempDir()
	a := New(metaClient("LAUNCHER BYTES"), "https://meta.example/v2", installDir)

	path, err := a.Fetch(context.Background(), "1.21.1", "latest")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(installDir, LauncherName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "LAUNCHER BYTES", string(data))
}

func TestMetaAcquirer_ExplicitVersionKeepsOldLauncher(t *testing.T) {
	installDir := t.TempDir()
	target := filepath.Join(installDir, LauncherName)
	require.NoError(t, os.WriteFile(target, []byte("PREVIOUS"), 0o644))

	a := New(metaClient("NEW LAUNCHER"), "https://meta.example/v2", installDir)

	_, err := a.Fetch(context.Background(), "1.21.1", "0.15.0")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "NEW LAUNCHER", string(data))

	old, err := os.ReadFile(target + ".old")
	require.NoError(t, err)
	assert.Equal(t, "PREVIOUS", string(old))
}

func TestMetaAcquirer_NoLoaderForGameVersion(t *testing.T) {
	client := &fakeHTTPClient{responses: map[string]string{
		"/v2/versions/loader/9.9.9": `[]`,
	}}
	a := New(client, "https://meta.example/v2", t.TempDir())

	_, err := a.Fetch(context.Background(), "9.9.9", "latest")
	assert.ErrorIs(t, err, errs.ErrAcquisition)
}
