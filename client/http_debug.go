package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps every request and response through zerolog at debug
// level. It is installed by WithDebugLogging(true) or when PCD_DEBUG=true or
// DEBUG=true is set at construction time.
//
// Dumps contain full bodies, including uploaded image bytes and base64
// pipeline images, so keep it out of production.
//
//	export PCD_DEBUG=true
//	pcdctl health
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) CloseIdleConnections() { closeIdle(dt.base) }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Str("request_dump", string(reqDump)).
			Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks PCD_DEBUG (client-specific) and DEBUG
// (general). Either must equal "true" exactly.
func debugLoggingRequested() bool {
	return os.Getenv("PCD_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
