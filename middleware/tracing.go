package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing wraps the transport with OpenTelemetry client spans named after
// the API action. Options are passed to otelhttp.
func Tracing(opts ...otelhttp.Option) Middleware {
	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "passwords " + Action(r.URL.Path)
		}),
	}, opts...)

	return func(next http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(transport(next), opts...)
	}
}
