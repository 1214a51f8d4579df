package cashew

import (
	"os"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMain(m *testing.M) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	os.Exit(m.Run())
}

// redirectTracing routes traces to t until the returned teardown is called.
func redirectTracing(t *testing.T) func() {
	saved := gtrace.CoreTracer
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return func() {
		teardown()
		gtrace.CoreTracer = saved
	}
}

func TestRedirectTracingRestoresTracer(t *testing.T) {
	saved := gtrace.CoreTracer
	teardown := redirectTracing(t)
	if gtrace.CoreTracer == saved {
		t.Fatalf("tracer not redirected")
	}
	if gtrace.CoreTracer.GetTraceLevel() != tracing.LevelDebug {
		t.Errorf("expected redirected tracer at debug level")
	}
	T().Debugf("cashew: redirected trace")
	teardown()
	if gtrace.CoreTracer != saved {
		t.Errorf("tracer not restored after teardown")
	}
}
