package tracing

import (
	"strconv"
	"unicode"

	"github.com/gin-gonic/gin"
)

const maxHeaderID = 64

// HTTPMiddleware starts a span per request. An incoming X-Trace-ID is
// continued; both IDs are echoed in the response headers.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithTrace(c.Request.Context(),
			TraceID(headerID(c.GetHeader(HeaderTraceID))),
			SpanID(headerID(c.GetHeader(HeaderSpanID))),
		)

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		if profile := c.Param("profile"); profile != "" {
			span.SetTag("profile", profile)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}
		span.Finish()
		tracer.Submit(span)
	}
}

// headerID accepts short alphanumeric IDs and drops anything else
func headerID(v string) string {
	if v == "" || len(v) > maxHeaderID {
		return ""
	}
	for _, r := range v {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
			return ""
		}
	}
	return v
}
