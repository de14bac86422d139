/*
Package tracing gives every HTTP request a trace and span ID.

IDs travel in the X-Trace-ID and X-Span-ID headers. A client that sends an
X-Trace-ID has it continued, so a sequence of calls made by one user action
can be grouped; otherwise a new trace starts. The IDs are echoed in the
response and stored in the request context, where Logger picks them up.

Finished spans are logged by a background collector at debug level, or at
warn level when the handler recorded an error.

# Usage

	tracer := tracing.New("webdesk", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// in a handler
	log := tracing.Logger(c.Request.Context(), logger)
*/
package tracing
