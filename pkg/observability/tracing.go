package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer provides X-Ray tracing. A nil or disabled Tracer runs everything
// untraced.
type Tracer struct {
	serviceName string
	enabled     bool
}

// NewTracer creates a new tracer instance
func NewTracer(serviceName string, enabled bool) *Tracer {
	return &Tracer{
		serviceName: serviceName,
		enabled:     enabled,
	}
}

// Enabled reports whether segments are recorded
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// StartSubsegment starts a new subsegment within an existing segment
func (t *Tracer) StartSubsegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	if !t.Enabled() {
		return ctx, nil
	}
	return xray.BeginSubsegment(ctx, fmt.Sprintf("%s.%s", t.serviceName, name))
}

// TraceFunction wraps a function with tracing
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, seg := t.StartSubsegment(ctx, name)
	if seg == nil {
		return fn(ctx)
	}

	err := fn(ctx)
	seg.Close(err)

	return err
}

// AddAnnotation adds an indexed annotation to the current segment
func (t *Tracer) AddAnnotation(ctx context.Context, key string, value string) {
	if !t.Enabled() {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation(key, value)
	}
}

// InstrumentClient returns c wrapped so outbound calls show up as remote
// subsegments
func (t *Tracer) InstrumentClient(c *http.Client) *http.Client {
	if !t.Enabled() {
		return c
	}
	return xray.Client(c)
}
