package api

import (
	"github.com/onsi/ginkgo/v2"
)

// ginkgoLogger prints client diagnostics to GinkgoWriter, which only surfaces
// output for failing tests unless ginkgo runs with -v.
type ginkgoLogger struct {
	debug bool
}

func newGinkgoLogger(cfg *TestConfig) *ginkgoLogger {
	return &ginkgoLogger{debug: cfg.LogRequests}
}

func (l *ginkgoLogger) InfoObj(msg, key string, obj interface{}) {
	ginkgo.GinkgoWriter.Printf("INFO %s %s=%v\n", msg, key, obj)
}

func (l *ginkgoLogger) DebugObj(msg, key string, obj interface{}) {
	if l.debug {
		ginkgo.GinkgoWriter.Printf("DEBUG %s %s=%v\n", msg, key, obj)
	}
}

func (l *ginkgoLogger) WarnObj(msg, key string, obj interface{}) {
	ginkgo.GinkgoWriter.Printf("WARN %s %s=%v\n", msg, key, obj)
}

func (l *ginkgoLogger) ErrorObj(msg, key string, obj interface{}) {
	ginkgo.GinkgoWriter.Printf("ERROR %s %s=%v\n", msg, key, obj)
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: use the trace_id above to search service logs for this request\n")
}
