package bot

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaEvent is the payload of the bot's Lambda function. If ReplyChannel
// is set, the response is also published there over NATS.
type LambdaEvent struct {
	Request
	ReplyChannel string `json:"reply_channel,omitempty"`
}

// LambdaClient asks a bot deployed as an AWS Lambda function for guesses.
type LambdaClient struct {
	client   *lambda.Client
	function string
}

// NewLambdaClient uses the default AWS credential chain.
func NewLambdaClient(ctx context.Context, function string) (*LambdaClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &LambdaClient{client: lambda.NewFromConfig(cfg), function: function}, nil
}

func (c *LambdaClient) Suggest(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(LambdaEvent{Request: req})
	if err != nil {
		return Response{}, err
	}
	out, err := c.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(c.function),
		Payload:      payload,
	})
	if err != nil {
		return Response{}, err
	}
	if out.FunctionError != nil {
		return Response{}, errors.New("lambda function failed: " + aws.ToString(out.FunctionError) +
			": " + string(out.Payload))
	}
	return decodeResponse(out.Payload)
}

// Suggester is anything that can suggest a guess: a Bot in this process
// or a remote one.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (Response, error)
}

// Local adapts a Bot to Suggester.
type Local struct {
	*Bot
}

func (l Local) Suggest(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	return l.Bot.Suggest(req)
}
