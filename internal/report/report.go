// Package report writes settled request outcomes through a logger.
package report

import (
	"github.com/bft-labs/whyql/pkg/fetch"
	"github.com/bft-labs/whyql/pkg/log"
)

// Result logs res. Responses are logged at info level, failures at error
// level, so both share one output stream but remain distinguishable.
func Result(logger log.Logger, endpoint string, res fetch.Result) {
	if res.OK() {
		resp := res.Response
		logger.Info("response",
			log.String("request_id", res.ID),
			log.String("endpoint", endpoint),
			log.Int("status", resp.Status),
			log.String("status_text", resp.StatusText),
			log.String("url", resp.URL),
			log.Bool("redirected", resp.Redirected),
			log.String("content_type", resp.Header.Get("Content-Type")),
			log.Duration("duration", resp.Duration),
			log.String("body", resp.Text()),
		)
		return
	}

	logger.Error("request failed",
		log.String("request_id", res.ID),
		log.String("endpoint", endpoint),
		log.String("kind", string(res.Err.Kind)),
		log.String("message", res.Err.Message),
	)
}
