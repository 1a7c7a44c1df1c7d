package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/metrics"
	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/source"
	"github.com/lost-woods/rngaudit/src/verdict"
)

// Options configures the handlers. Source and Health may be nil when no
// hardware device is attached; capture requests then answer 503.
type Options struct {
	Source     io.Reader
	Health     *source.Health
	Samples    samples.Options
	Params     battery.Params
	Policy     verdict.Policy
	Metrics    *metrics.Metrics
	CaptureMax int
	BodyLimit  int64
}

type Handlers struct {
	r          io.Reader
	health     *source.Health
	opts       samples.Options
	params     battery.Params
	policy     verdict.Policy
	metrics    *metrics.Metrics
	captureMax int
	bodyLimit  int64
	log        *zap.SugaredLogger
}

func NewHandlers(o Options, log *zap.SugaredLogger) *Handlers {
	if o.Policy == nil {
		o.Policy = verdict.DefaultPolicy()
	}
	if o.Params == (battery.Params{}) {
		o.Params = battery.DefaultParams()
	}
	if o.CaptureMax <= 0 {
		o.CaptureMax = 1 << 20
	}
	if o.BodyLimit <= 0 {
		o.BodyLimit = 32 << 20
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handlers{
		r:          o.Source,
		health:     o.Health,
		opts:       o.Samples,
		params:     o.Params,
		policy:     o.Policy,
		metrics:    o.Metrics,
		captureMax: o.CaptureMax,
		bodyLimit:  o.BodyLimit,
		log:        log,
	}
}

func (h *Handlers) sourceOK(c *gin.Context) bool {
	if h.r == nil || h.health == nil {
		newReply(c).fail(http.StatusServiceUnavailable, "Sample source unavailable: no device configured")
		return false
	}

	st := h.health.Status()
	if st.OK {
		return true
	}

	newReply(c).fail(http.StatusServiceUnavailable, "Sample source unhealthy: "+st.Reason)
	return false
}

// handle runs work and replies in the negotiated format. work returns either
// a report (text plus JSON payload) or an HTTP status with an error message.
func (h *Handlers) handle(
	c *gin.Context,
	work func() (text string, payload gin.H, status int, errMsg string),
) {
	r := newReply(c)
	text, payload, status, errMsg := work()
	if errMsg != "" {
		r.fail(status, errMsg)
		return
	}
	r.report(text, payload)
}

// handleSource is handle gated on the sample source being healthy.
func (h *Handlers) handleSource(
	c *gin.Context,
	work func() (text string, payload gin.H, status int, errMsg string),
) {
	if !h.sourceOK(c) {
		return
	}
	h.handle(c, work)
}

// CheckHeader rejects requests whose headerName does not carry expectedValue.
// An empty expectedValue disables the check.
func CheckHeader(headerName, expectedValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedValue == "" {
			c.Next()
			return
		}

		if c.GetHeader(headerName) != expectedValue {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
