package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
)

// ErrUnacceptable marks a URL the video host rejects or for which no
// usable encoding exists.
var ErrUnacceptable = errors.New("unacceptable video source")

const (
	sourceApiHostFlag   = "source-api-host"
	sourceApiPortFlag   = "source-api-port"
	sourceApiSecureFlag = "source-api-secure"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   sourceApiHostFlag,
			Usage:  "video source api host",
			EnvVar: "SOURCE_API_HOST",
			Value:  "www.youtube.com",
		},
		cli.IntFlag{
			Name:   sourceApiPortFlag,
			Usage:  "video source api port",
			EnvVar: "SOURCE_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   sourceApiSecureFlag,
			Usage:  "video source api secure (https)",
			EnvVar: "SOURCE_API_SECURE",
		},
	)
}

// Preferred itags, best first. Selection never goes outside this list.
const (
	itagHD       = "22"
	itagStandard = "18"
	itagLow      = "36"
)

type Encoding struct {
	Itag    string `json:"itag"`
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

type Source struct {
	Encodings []Encoding
	Chosen    *Encoding
}

type metadataResponse struct {
	Encodings []Encoding `json:"encodings"`
}

type Api struct {
	lazymap.LazyMap[*Source]
	url string
	cl  *http.Client
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(sourceApiHostFlag)
	port := c.Int(sourceApiPortFlag)
	secure := c.BoolT(sourceApiSecureFlag)
	if host == "" {
		return nil
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	log.Infof("video source api endpoint %v", u)
	return &Api{
		url: u,
		cl:  cl,
		LazyMap: *lazymap.New[*Source](&lazymap.Config{
			Expire:      time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

// Resolve queries the video host for the available encodings of the
// given URL and picks one. Results are memoized briefly since the
// host is rate-limited.
func (api *Api) Resolve(_ context.Context, videoURL string) (*Source, error) {
	return api.LazyMap.Get(videoURL, func() (*Source, error) {
		return api.resolve(videoURL)
	})
}

func (api *Api) resolve(videoURL string) (*Source, error) {
	// Resolved entries are shared across requests, so the lookup runs
	// on its own deadline rather than the first caller's.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	reqURL := fmt.Sprintf("%s/api/videos?url=%s", api.url, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	res, err := api.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnacceptable, err.Error())
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		log.WithField("status", res.StatusCode).WithField("url", videoURL).Warn("video host rejected url")
		return nil, ErrUnacceptable
	}
	var md metadataResponse
	if err := json.NewDecoder(res.Body).Decode(&md); err != nil {
		return nil, errors.Wrap(ErrUnacceptable, "bad metadata payload")
	}
	chosen, err := SelectEncoding(md.Encodings)
	if err != nil {
		return nil, err
	}
	return &Source{
		Encodings: md.Encodings,
		Chosen:    chosen,
	}, nil
}

// SelectEncoding picks the encoding to download. Deterministic: the
// HD itag wins, then the standard one, then the known low-quality
// fallback. Anything else means the source is unacceptable.
func SelectEncoding(encodings []Encoding) (*Encoding, error) {
	for _, itag := range []string{itagHD, itagStandard, itagLow} {
		for i := range encodings {
			if encodings[i].Itag == itag {
				return &encodings[i], nil
			}
		}
	}
	return nil, ErrUnacceptable
}
