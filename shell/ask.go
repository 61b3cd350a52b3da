package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/domino14/wordlebits/bot"
	"github.com/domino14/wordlebits/config"
)

const askTimeout = 30 * time.Second

// request turns the hints applied so far into a bot request. All of them
// must use one encoding.
func (sc *ShellController) request() (bot.Request, error) {
	req := bot.Request{History: []bot.Step{}}
	for _, p := range sc.history {
		name := p.enc.Name()
		if req.Encoding != "" && req.Encoding != name {
			return req, errors.New("the hints so far mix encodings; a bot takes only one")
		}
		req.Encoding = name
		req.History = append(req.History, bot.Step{
			Guess: p.guess,
			Hint:  bot.FormatHint(p.enc, p.code, len(p.guess)),
		})
	}
	return req, nil
}

// suggester picks where ask sends its request.
func (sc *ShellController) suggester(ctx context.Context, via string) (bot.Suggester, func(), error) {
	switch via {
	case "", "local":
		if sc.root == nil {
			return nil, nil, errNotLoaded
		}
		return bot.Local{Bot: bot.NewBot(sc.root)}, func() {}, nil
	case "nats":
		nc, err := bot.Connect(ctx, sc.config.GetString(config.ConfigNatsURL), 1)
		if err != nil {
			return nil, nil, err
		}
		return bot.NewClient(nc, sc.config.GetString(config.ConfigBotSubject)), nc.Close, nil
	case "lambda":
		c, err := bot.NewLambdaClient(ctx, sc.config.GetString(config.ConfigLambdaFunction))
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown bot %q; use local, nats or lambda", via)
}

// ask gets a suggestion for the hints applied so far from a bot: one built
// from the loaded lists, one served over NATS, or the Lambda function.
func (sc *ShellController) ask(cmd *shellcmd) (*Response, error) {
	req, err := sc.request()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()
	s, done, err := sc.suggester(ctx, cmd.options.String("via"))
	if err != nil {
		return nil, err
	}
	defer done()
	resp, err := s.Suggest(ctx, req)
	if err != nil {
		return nil, err
	}
	return sc.render(cmd, resp, func() string {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s bits, %d answers remaining)", resp.Guess, sc.bits(resp.Info), resp.Remaining)
		if len(resp.Answers) > 0 {
			sb.WriteString("\n" + strings.Join(resp.Answers, " "))
		}
		return sb.String()
	})
}
