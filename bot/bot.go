// Package bot serves guess suggestions to other programs. A request carries
// the guesses played so far and the hints they got; the reply is the next
// guess to play. Requests arrive over NATS or as AWS Lambda events.
package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/outcome"
	"github.com/domino14/wordlebits/solver"
	"github.com/domino14/wordlebits/tilemapping"
)

// MaxListedAnswers is the most remaining answers a response spells out.
const MaxListedAnswers = 20

var ErrNoSuggestion = errors.New("no answer is consistent with the hints")

// Step is one guess and the hint it received. Under the standard encoding
// the hint is written as for outcome.Parse; under hits it is a number; under
// counts it is "yellow,green".
type Step struct {
	Guess string `json:"guess"`
	Hint  string `json:"hint"`
}

type Request struct {
	ID string `json:"id,omitempty"`
	// Encoding of the hints; empty means standard.
	Encoding string `json:"encoding,omitempty"`
	History  []Step `json:"history"`
}

type Response struct {
	ID        string   `json:"id,omitempty"`
	Guess     string   `json:"guess,omitempty"`
	Info      float64  `json:"info"`
	Remaining int      `json:"remaining"`
	Answers   []string `json:"answers,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type Bot struct {
	root *solver.Solver
}

func NewBot(root *solver.Solver) *Bot {
	return &Bot{root: root}
}

func parseHint(enc outcome.Encoder, hint string, length int) (outcome.Code, error) {
	switch enc.(type) {
	case outcome.Hits:
		n, err := strconv.Atoi(strings.TrimSpace(hint))
		if err != nil || n < 0 || n > length {
			return 0, fmt.Errorf("%w: %q", outcome.ErrBadHint, hint)
		}
		return outcome.Code(n), nil
	case outcome.Counts:
		yellow, green, ok := strings.Cut(hint, ",")
		y, yerr := strconv.Atoi(strings.TrimSpace(yellow))
		g, gerr := strconv.Atoi(strings.TrimSpace(green))
		if !ok || yerr != nil || gerr != nil || y < 0 || g < 0 || y+g > length {
			return 0, fmt.Errorf("%w: %q", outcome.ErrBadHint, hint)
		}
		return outcome.CountsCode(y, g, length), nil
	}
	return outcome.Parse(hint, length)
}

// FormatHint writes a hint the way a request carries it.
func FormatHint(enc outcome.Encoder, code outcome.Code, length int) string {
	switch enc.(type) {
	case outcome.Hits:
		return strconv.Itoa(int(code))
	case outcome.Counts:
		base := outcome.Code(length + 1)
		return fmt.Sprintf("%d,%d", code/base, code%base)
	}
	return outcome.Label(code, length)
}

// Suggest replays the request's history and picks the next guess.
func (b *Bot) Suggest(req Request) (Response, error) {
	resp := Response{ID: req.ID}
	enc := outcome.Encoder(outcome.Standard{})
	if req.Encoding != "" {
		var ok bool
		if enc, ok = outcome.FromName(req.Encoding); !ok {
			return resp, fmt.Errorf("unknown encoding %q", req.Encoding)
		}
	}
	s := b.root
	for _, step := range req.History {
		code, err := parseHint(enc, step.Hint, s.WordLength())
		if err != nil {
			return resp, err
		}
		if s, err = s.PrunedBy(tilemapping.Normalize(step.Guess), enc, code); err != nil {
			return resp, err
		}
	}
	resp.Remaining = s.Len()
	if s.Len() <= MaxListedAnswers {
		resp.Answers = s.Answers()
	}
	switch {
	case s.Empty():
		return resp, ErrNoSuggestion
	case s.Solved():
		resp.Guess = s.Answers()[0]
	default:
		best, ok := s.Best()
		if !ok {
			return resp, ErrNoSuggestion
		}
		resp.Guess, resp.Info = best.Word, best.Info
	}
	return resp, nil
}

func errorResponse(id, message string, err error) Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return Response{ID: id, Error: msg}
}

// Handle answers one encoded request. It never fails; errors are reported
// in the response.
func (b *Bot) Handle(data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse("", "could not parse request", err)
	}
	resp, err := b.Suggest(req)
	if err != nil {
		return errorResponse(req.ID, "could not suggest a guess", err)
	}
	log.Debug().Str("id", req.ID).Int("steps", len(req.History)).
		Str("guess", resp.Guess).Int("remaining", resp.Remaining).Msg("suggested")
	return resp
}

// Serve answers requests sent to subject until the subscription is
// drained or the connection closes.
func Serve(nc *nats.Conn, subject string, b *Bot) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("received-request")
		data, err := json.Marshal(b.Handle(m.Data))
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			data = []byte(`{"error":` + strconv.Quote(err.Error()) + `}`)
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return nil, err
	}
	if err := nc.Flush(); err != nil {
		return nil, err
	}
	if err := nc.LastError(); err != nil {
		return nil, err
	}
	log.Info().Str("subject", subject).Msg("listening")
	return sub, nil
}
