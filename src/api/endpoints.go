package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lost-woods/rngaudit/src/report"
	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/source"
	"github.com/lost-woods/rngaudit/src/whiten"
)

type samplesBody struct {
	Samples    []int `json:"samples"`
	IgnoreZero *bool `json:"ignore_zero"`
}

// readSamples accepts either newline-delimited integers or a JSON body.
// The ignore_zero query parameter overrides both the body and the default.
func (h *Handlers) readSamples(c *gin.Context) (*samples.Set, error) {
	opts := h.opts
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bodyLimit)

	var set *samples.Set
	if strings.Contains(strings.ToLower(c.ContentType()), "json") {
		var body samplesBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		if body.IgnoreZero != nil {
			opts.IgnoreZero = *body.IgnoreZero
		}
		if err := queryIgnoreZero(c, &opts); err != nil {
			return nil, err
		}
		set = samples.FromInts(body.Samples, opts)
	} else {
		if err := queryIgnoreZero(c, &opts); err != nil {
			return nil, err
		}
		parsed, stats, err := samples.Parse(c.Request.Body, opts)
		if err != nil {
			return nil, err
		}
		if stats.Skipped > 0 {
			h.log.Debugw("skipped invalid sample lines", "skipped", stats.Skipped, "lines", stats.Lines)
		}
		set = parsed
	}

	if set.Len() == 0 {
		return nil, samples.ErrNoSamples
	}
	return set, nil
}

func queryIgnoreZero(c *gin.Context, opts *samples.Options) error {
	v, ok := c.GetQuery("ignore_zero")
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New("invalid ignore_zero flag")
	}
	opts.IgnoreZero = b
	return nil
}

func (h *Handlers) cardReply(mode string, card report.Card) (string, gin.H, int, string) {
	h.metrics.ObserveCard(mode, card)
	var out bytes.Buffer
	if err := report.RenderCard(&out, card); err != nil {
		h.log.Error(err)
		return "", nil, http.StatusInternalServerError, "Error rendering report."
	}
	return out.String(), gin.H{
		"label":    card.Label,
		"samples":  card.Samples,
		"bits":     card.Bits,
		"outcomes": card.Outcomes,
		"failures": card.Failures,
		"passed":   card.Passed(),
	}, 0, ""
}

// Analyze grades the posted samples with the full battery.
func (h *Handlers) Analyze(c *gin.Context) {
	h.handle(c, func() (string, gin.H, int, string) {
		set, err := h.readSamples(c)
		if err != nil {
			return "", nil, http.StatusBadRequest, err.Error()
		}

		card, err := report.Analyze(c.Request.Context(), "Submitted Samples", set, h.params, h.policy)
		if err != nil {
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error running the test battery."
		}
		return h.cardReply("analyze", card)
	})
}

// Compare whitens the posted samples and contrasts both streams.
func (h *Handlers) Compare(c *gin.Context) {
	h.handle(c, func() (string, gin.H, int, string) {
		set, err := h.readSamples(c)
		if err != nil {
			return "", nil, http.StatusBadRequest, err.Error()
		}

		cmp, _ := report.WhitenAndCompare(set, whiten.Shake{})
		h.metrics.ObserveComparison(cmp)

		var out bytes.Buffer
		if err := report.RenderComparison(&out, cmp); err != nil {
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error rendering comparison."
		}
		return out.String(), gin.H{
			"raw":       cmp.Raw,
			"processed": cmp.Processed,
			"rows":      cmp.Rows,
		}, 0, ""
	})
}

// Whiten returns the SHAKE-256 whitened samples.
func (h *Handlers) Whiten(c *gin.Context) {
	length := 0
	if v, ok := c.GetQuery("length"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > h.captureMax {
			newReply(c).fail(http.StatusBadRequest,
				fmt.Sprintf("Length must be an integer between 1 and %d.", h.captureMax))
			return
		}
		length = n
	}

	h.handle(c, func() (string, gin.H, int, string) {
		set, err := h.readSamples(c)
		if err != nil {
			return "", nil, http.StatusBadRequest, err.Error()
		}

		tr := whiten.Shake{Length: length}
		out := tr.Apply(set.Bytes())
		h.metrics.ObserveWhiten(len(out))

		var text bytes.Buffer
		if err := samples.Write(&text, out); err != nil {
			return "", nil, http.StatusInternalServerError, "Error encoding samples."
		}
		ints := make([]int, len(out))
		for i, v := range out {
			ints[i] = int(v)
		}
		return strings.TrimSuffix(text.String(), "\n"), gin.H{
			"transform": tr.Name(),
			"size":      len(out),
			"samples":   ints,
		}, 0, ""
	})
}

// Capture reads samples straight from the hardware source and grades them.
func (h *Handlers) Capture(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "4096"))
	if err != nil || size < 2 || size > h.captureMax {
		newReply(c).fail(http.StatusBadRequest,
			fmt.Sprintf("Size must be an integer between 2 and %d.", h.captureMax))
		return
	}
	opts := h.opts
	if err := queryIgnoreZero(c, &opts); err != nil {
		newReply(c).fail(http.StatusBadRequest, err.Error())
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		set, err := source.Capture(h.r, size, opts)
		if err != nil {
			h.health.Set(false, "error fetching samples: "+err.Error())
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error fetching samples."
		}

		card, err := report.Analyze(c.Request.Context(), "Captured Samples", set, h.params, h.policy)
		if err != nil {
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error running the test battery."
		}
		return h.cardReply("capture", card)
	})
}

// Health reports the background source check. It never touches the device.
func (h *Handlers) Health(c *gin.Context) {
	r := reply{c: c, requestID: "health-check"}
	if h.health == nil {
		r.report("OK (no sample source attached)", gin.H{"ok": true, "source": false})
		return
	}

	st := h.health.Status()
	checked := st.CheckedAt.Format(time.RFC3339)
	if !st.OK {
		r.fail(http.StatusServiceUnavailable, fmt.Sprintf("UNHEALTHY: %s (last checked %s)", st.Reason, checked))
		return
	}
	r.report("OK (last checked "+checked+")", gin.H{"ok": true, "source": true, "status": st})
}
