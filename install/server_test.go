package install

import (
	"TUI-MC-Launcher/version"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"
)

var linuxEnv = version.Environment{OS: "linux", Arch: "x86_64"}

// fakeServer serves an in-memory file tree and counts GET requests per path.
type fakeServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	gets  map[string]int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	s := &fakeServer{files: make(map[string][]byte), gets: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body, ok := s.files[r.URL.Path]
	if r.Method == http.MethodGet {
		s.gets[r.URL.Path]++
	}
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, path.Base(r.URL.Path), time.Time{}, bytes.NewReader(body))
}

// put publishes body at p and returns its download descriptor.
func (s *fakeServer) put(p string, body []byte) version.Download {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = body
	return version.Download{SHA1: sha1hex(body), Size: int64(len(body)), URL: s.URL + p}
}

func (s *fakeServer) putJSON(t *testing.T, p string, v any) version.Download {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return s.put(p, data)
}

func (s *fakeServer) getCount(p string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[p]
}

func sha1hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func compressLZMA(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

var assetFiles = map[string][]byte{
	"icons/icon_16x16.png": []byte("png-bytes"),
	"sounds/step.ogg":      []byte("ogg-bytes"),
}

// publishVersion serves a complete version "1.0" and its manifest.
func publishVersion(t *testing.T, s *fakeServer) {
	t.Helper()

	objects := make(map[string]assetObject)
	for name, body := range assetFiles {
		d := s.put("/res/"+sha1hex(body)[:2]+"/"+sha1hex(body), body)
		objects[name] = assetObject{Hash: d.SHA1, Size: d.Size}
	}
	index := s.putJSON(t, "/indexes/legacy.json", assetIndex{Objects: objects, Virtual: true})

	client := s.put("/client.jar", []byte("client-jar"))
	lib := s.put("/lib.jar", []byte("library-jar"))
	lib.Path = "com/example/lib/1.0/lib-1.0.jar"

	meta := version.Meta{
		ID:        "1.0",
		Type:      "release",
		MainClass: "net.minecraft.client.main.Main",
		AssetIndex: &version.AssetIndex{
			ID: "legacy", SHA1: index.SHA1, Size: index.Size, URL: index.URL,
		},
		Downloads: map[string]version.Download{"client": client},
		Libraries: []version.Library{
			{Name: "com.example:lib:1.0", Downloads: &version.LibraryDownloads{Artifact: &lib}},
			{
				// never served: fetching it would fail the install
				Name: "com.example:mac-only:1.0",
				Downloads: &version.LibraryDownloads{Artifact: &version.Download{
					Path: "com/example/mac-only/1.0/mac-only-1.0.jar", SHA1: sha1hex([]byte("x")), URL: s.URL + "/mac.jar",
				}},
				Rules: []version.Rule{{Action: "allow", OS: &version.OSRule{Name: "osx"}}},
			},
		},
		ReleaseTime: version.Timestamp(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	metaDL := s.putJSON(t, "/v/1.0.json", meta)

	s.putJSON(t, "/manifest.json", Manifest{Versions: []RemoteVersion{
		{ID: "1.0", Type: "release", URL: metaDL.URL, SHA1: metaDL.SHA1, ReleaseTime: meta.ReleaseTime},
	}})
}

func newTestInstaller(s *fakeServer, root string) *Installer {
	inst := New(root)
	inst.ManifestURL = s.URL + "/manifest.json"
	inst.RuntimeURL = s.URL + "/runtime/all.json"
	inst.ResourcesURL = s.URL + "/res"
	inst.Env = linuxEnv
	inst.Concurrency = 4
	return inst
}
