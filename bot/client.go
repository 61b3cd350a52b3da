package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Connect dials a NATS server, retrying with backoff.
func Connect(ctx context.Context, url string, attempts uint) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("wordlebits"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	return nc, nil
}

// Client asks a bot served over NATS for guesses.
type Client struct {
	nc      *nats.Conn
	subject string
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{nc: nc, subject: subject}
}

func decodeResponse(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, err
	}
	if resp.Error != "" {
		return resp, errors.New("bot returned: " + resp.Error)
	}
	return resp, nil
}

// Suggest sends a request and waits for the bot's answer.
func (c *Client) Suggest(ctx context.Context, req Request) (Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	msg, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		return Response{}, err
	}
	log.Debug().Msgf("res: %v", string(msg.Data))
	return decodeResponse(msg.Data)
}
