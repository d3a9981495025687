package api

import (
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/okian/atompull/internal/adapters/encode"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/pkg/metrics"
)

// PullHandler answers pull requests on behalf of the host collector.
type PullHandler struct {
	deps    Dependencies
	limiter *rate.Limiter
}

// NewPullHandler creates a new pull handler.
func NewPullHandler(deps Dependencies) *PullHandler {
	return &PullHandler{deps: deps}
}

// HandlePull handles POST /pull/{kind} requests.
//
// A skip is not an HTTP error: the host always gets a definite status,
// so the response is 200 with status "skip" and an empty record list.
// Only a malformed kind name is a client error.
func (h *PullHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	const op = "api.pull"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		metrics.RecordRateLimitedPull()
		writeError(w, http.StatusTooManyRequests, "rate_limited", NewKind(op, ErrRateLimited))
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/pull/")
	kind, err := atom.Parse(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, records := h.deps.OnPull(r.Context(), kind)
	if records == nil {
		records = []encode.Record{}
	}
	writeJSON(w, http.StatusOK, pullResponse{
		Status:  result.String(),
		Records: records,
	})
}
