package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"influencerdash/internal/formatter"
	"influencerdash/internal/loader"
	"influencerdash/internal/logger"
	"influencerdash/internal/metrics"
	"influencerdash/internal/normalizer"
	"influencerdash/internal/validator"
)

// maxBodyBytes bounds a POSTed filter.
const maxBodyBytes = 1 << 20

// Handler serves one loaded session. The session is read-only, so a single
// handler serves concurrent requests without locking.
type Handler struct {
	session  *loader.Session
	defaults metrics.Options
	log      *logger.Logger
	currency string
}

// NewHandler creates a handler. A nil logger discards output.
func NewHandler(session *loader.Session, defaults metrics.Options, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}

	return &Handler{
		session:  session,
		defaults: defaults,
		log:      log,
		currency: formatter.DefaultCurrency,
	}
}

// QualityResponse is the data quality view of the session.
type QualityResponse struct {
	Quality *validator.ValidationResult `json:"quality"`
	Issues  []normalizer.Issue          `json:"issues"`
	Tables  []loader.TableStats         `json:"tables"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) filters(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, metrics.AvailableOptions(h.session.Dataset))
}

func (h *Handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	res, err := h.computeFromQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) postMetrics(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", ErrInvalidBody, err))
		return
	}

	res, err := h.compute(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	res, err := h.computeFromQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := formatter.Render(&formatter.Report{
		Result:   res,
		Quality:  h.session.Quality,
		Currency: h.currency,
	})

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (h *Handler) quality(w http.ResponseWriter, _ *http.Request) {
	issues := h.session.Issues
	if issues == nil {
		issues = []normalizer.Issue{}
	}

	writeSuccess(w, http.StatusOK, QualityResponse{
		Quality: h.session.Quality,
		Issues:  issues,
		Tables:  h.session.Tables,
	})
}

func (h *Handler) computeFromQuery(r *http.Request) (*metrics.Result, error) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	return h.compute(req)
}

func (h *Handler) compute(req FilterRequest) (*metrics.Result, error) {
	f, opts, err := req.Resolve(h.defaults)
	if err != nil {
		return nil, err
	}

	return metrics.Compute(h.session.Dataset, f, opts), nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestIDFromContext(r.Context())
	status, code := mapError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "request_id", reqID, "error", err)
		message = "internal server error"
	}

	writeError(w, status, code, message, reqID)
}
