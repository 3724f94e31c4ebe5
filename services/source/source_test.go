package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/lazymap"
)

func TestSelectEncoding(t *testing.T) {
	tests := []struct {
		name    string
		itags   []string
		want    string
		wantErr bool
	}{
		{"prefers hd", []string{"36", "18", "22"}, "22", false},
		{"falls back to standard", []string{"36", "18", "133"}, "18", false},
		{"falls back to low", []string{"133", "36"}, "36", false},
		{"no usable encoding", []string{"133", "140"}, "", true},
		{"empty list", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encodings := make([]Encoding, 0, len(tt.itags))
			for _, itag := range tt.itags {
				encodings = append(encodings, Encoding{Itag: itag})
			}
			enc, err := SelectEncoding(encodings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnacceptable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, enc.Itag)
		})
	}
}

func TestSelectEncodingDeterministic(t *testing.T) {
	encodings := []Encoding{{Itag: "18"}, {Itag: "22"}, {Itag: "36"}}
	first, err := SelectEncoding(encodings)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		enc, err := SelectEncoding(encodings)
		require.NoError(t, err)
		assert.Equal(t, first.Itag, enc.Itag)
	}
}

func newTestApi(url string, cl *http.Client) *Api {
	return &Api{
		url: url,
		cl:  cl,
		LazyMap: *lazymap.New[*Source](&lazymap.Config{
			Expire: time.Minute,
		}),
	}
}

func TestResolve(t *testing.T) {
	t.Run("picks preferred encoding", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/videos", r.URL.Path)
			assert.Equal(t, "https://youtu.be/abc", r.URL.Query().Get("url"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"encodings":[{"itag":"18","url":"http://cdn/18"},{"itag":"22","url":"http://cdn/22"}]}`))
		}))
		defer srv.Close()
		api := newTestApi(srv.URL, srv.Client())
		src, err := api.Resolve(context.Background(), "https://youtu.be/abc")
		require.NoError(t, err)
		assert.Equal(t, "22", src.Chosen.Itag)
		assert.Len(t, src.Encodings, 2)
	})

	t.Run("host rejection is unacceptable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()
		api := newTestApi(srv.URL, srv.Client())
		_, err := api.Resolve(context.Background(), "https://youtu.be/rejected")
		assert.ErrorIs(t, err, ErrUnacceptable)
	})

	t.Run("no usable encoding is unacceptable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"encodings":[{"itag":"140"}]}`))
		}))
		defer srv.Close()
		api := newTestApi(srv.URL, srv.Client())
		_, err := api.Resolve(context.Background(), "https://youtu.be/audio-only")
		assert.ErrorIs(t, err, ErrUnacceptable)
	})
}
