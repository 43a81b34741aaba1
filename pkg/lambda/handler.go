package lambda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"product-service/pkg/httperr"
)

// CORS headers attached to every response
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
)

const tracerName = "product-service/pkg/lambda"

// CORSHeaders returns a fresh copy of the fixed response header set
func CORSHeaders() map[string]string {
	return map[string]string{
		HeaderAllowOrigin:      "*",
		HeaderAllowCredentials: "true",
	}
}

// Wrapper turns business callbacks into HandlerFuncs with a uniform
// response envelope: status code, CORS headers and a JSON body.
type Wrapper struct {
	logger logrus.FieldLogger
	tracer trace.Tracer
}

// Option configures a Wrapper
type Option func(*Wrapper)

// WithTracerProvider sets the provider used for per-invocation spans.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(w *Wrapper) {
		w.tracer = tp.Tracer(tracerName)
	}
}

// NewWrapper creates a new Wrapper. Request logging goes to logger;
// pass a logger with discarded output to silence it.
func NewWrapper(logger logrus.FieldLogger, opts ...Option) *Wrapper {
	if logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		logger = silent
	}

	w := &Wrapper{
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wrap adapts cb into a HandlerFunc. cb is invoked exactly once per request.
// Its result becomes a 200 JSON body; errors carrying a known httperr status
// keep that status, anything else (including a panic) becomes a 500.
func (w *Wrapper) Wrap(name string, cb Callback) HandlerFunc {
	return func(ctx context.Context, req *Request) *Response {
		if req == nil {
			req = &Request{}
		}

		requestID := req.RequestID
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx, span := w.tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("faas.invocation_id", requestID),
			),
		)
		defer span.End()

		log := w.logger.WithFields(logrus.Fields{
			"handler":    name,
			"request_id": requestID,
		})
		if sc := span.SpanContext(); sc.HasTraceID() {
			log = log.WithField("trace_id", sc.TraceID().String())
		}

		log.WithFields(logrus.Fields{
			"path_params":  req.PathParams,
			"query_params": req.QueryParams,
			"body":         string(req.Body),
		}).Info("REQ ===>")

		result, stack, err := invoke(ctx, cb, req)

		var body []byte
		if err == nil {
			body, err = marshal(result)
			if err != nil {
				err = fmt.Errorf("failed to serialize response: %w", err)
			}
		}

		if err != nil {
			statusCode := statusFor(err)
			message := httperr.MessageOf(err)

			// Panics keep the panicking stack; returned errors get the wrapper's
			if stack == nil {
				stack = debug.Stack()
			}
			log.WithFields(logrus.Fields{
				"status_code": statusCode,
				"error":       message,
				"stack":       string(stack),
			}).Errorf("ERR <=== [%d]", statusCode)

			span.RecordError(err)
			span.SetStatus(codes.Error, message)
			span.SetAttributes(attribute.Int("http.response.status_code", statusCode))

			return newResponse(statusCode, errorBody(statusCode, message))
		}

		log.WithField("status_code", httperr.StatusOK).Infof("RES <=== [%d]", httperr.StatusOK)
		span.SetAttributes(attribute.Int("http.response.status_code", httperr.StatusOK))

		return newResponse(httperr.StatusOK, body)
	}
}

// invoke runs cb, converting a panic into an error plus the panicking stack
func invoke(ctx context.Context, cb Callback, req *Request) (result interface{}, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			stack = debug.Stack()
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	result, err = cb(ctx, req)
	return result, nil, err
}

func statusFor(err error) int {
	if statusCode, ok := httperr.StatusOf(err); ok {
		return statusCode
	}
	return httperr.StatusServerError
}

func errorBody(statusCode int, message string) []byte {
	body, err := marshal(ErrorBody{StatusCode: statusCode, Message: message})
	if err != nil {
		// ErrorBody only holds an int and a string
		return []byte(fmt.Sprintf(`{"statusCode":%d,"message":""}`, statusCode))
	}
	return body
}

// marshal encodes v as compact JSON without HTML escaping
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func newResponse(statusCode int, body []byte) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}
