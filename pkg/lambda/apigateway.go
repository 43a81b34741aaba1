package lambda

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

// ProxyHandler is the signature aws-lambda-go expects for API Gateway proxy integrations
type ProxyHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// FromAPIGatewayRequest converts an API Gateway proxy event to a generic request
func FromAPIGatewayRequest(event events.APIGatewayProxyRequest) *Request {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	return &Request{
		RequestID:   event.RequestContext.RequestID,
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
	}
}

// ToAPIGatewayResponse converts a generic response to an API Gateway proxy response
func ToAPIGatewayResponse(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}

// Proxy adapts a HandlerFunc to an API Gateway proxy handler. It never returns
// an error, so the gateway always receives the JSON envelope.
func Proxy(h HandlerFunc) ProxyHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return ToAPIGatewayResponse(h(ctx, FromAPIGatewayRequest(event))), nil
	}
}

// Start runs h as the Lambda function handler. It blocks forever.
func Start(h HandlerFunc) {
	awslambda.Start(Proxy(h))
}
