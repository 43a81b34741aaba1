package lambda

import "context"

// Request represents a generic HTTP request for serverless functions
type Request struct {
	RequestID   string            `json:"request_id"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// PathParam returns the named path parameter, or "" when absent
func (r *Request) PathParam(name string) string {
	return r.PathParams[name]
}

// QueryParam returns the named query parameter, or "" when absent
func (r *Request) QueryParam(name string) string {
	return r.QueryParams[name]
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// ErrorBody is the JSON body returned for failed requests
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// HandlerFunc is a framework-agnostic handler. It always returns a response.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// Callback is the business function adapted into a HandlerFunc by Wrapper.Wrap
type Callback func(ctx context.Context, req *Request) (interface{}, error)
