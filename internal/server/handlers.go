package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/jigsaw/pkg/buildinfo"
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/gallery"
	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/partition"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layout. Items may be given either
// as bare aspect ratios or as gallery items, not both.
type LayoutRequest struct {
	AspectRatios []float64      `json:"aspect_ratios,omitempty"`
	Items        []gallery.Item `json:"items,omitempty"`
	pipeline.Options
}

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	RequestID string          `json:"request_id"`
	Layout    json.RawMessage `json:"layout"`
	Stats     StatsResponse   `json:"stats"`
}

// StatsResponse reports how a layout was computed.
type StatsResponse struct {
	Items      int    `json:"items"`
	Rows       int    `json:"rows"`
	Strategy   string `json:"strategy"`
	Objective  string `json:"objective"`
	DurationUS int64  `json:"duration_us"`
}

// ObjectivesResponse is the body of GET /v1/objectives.
type ObjectivesResponse struct {
	Objectives   []string         `json:"objectives"`
	Strategies   []string         `json:"strategies"`
	Aggregations []string         `json:"aggregations"`
	Defaults     pipeline.Options `json:"defaults"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID string    `json:"request_id,omitempty"`
	Error     ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleObjectives(w http.ResponseWriter, r *http.Request) {
	defaults := s.defaults()
	s.respondWithJSON(w, http.StatusOK, ObjectivesResponse{
		Objectives:   objective.Names(),
		Strategies:   []string{partition.StrategyDynamic, partition.StrategyExhaustive},
		Aggregations: []string{partition.Mean.String(), partition.Sum.String()},
		Defaults:     defaults,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req LayoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondWithError(w, r, jerrors.Wrap(jerrors.ErrCodeSearchTooLarge, err,
				"request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.respondWithError(w, r, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	ratios, err := req.ratios()
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	if len(ratios) > s.cfg.MaxItems {
		s.respondWithError(w, r, jerrors.New(jerrors.ErrCodeSearchTooLarge,
			"request has %d items, the limit is %d", len(ratios), s.cfg.MaxItems))
		return
	}

	opts := mergeOptions(req.Options, s.defaults(), s.cfg.MaxExhaustiveItems)
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	res, err := s.runner.Run(r.Context(), ratios, opts)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	data, err := layout.Marshal(res.Layout)
	if err != nil {
		s.respondWithError(w, r, jerrors.Wrap(jerrors.ErrCodeInternal, err, "encode layout"))
		return
	}

	s.respondWithJSON(w, http.StatusOK, LayoutResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Layout:    data,
		Stats: StatsResponse{
			Items:      res.Stats.Items,
			Rows:       res.Stats.Rows,
			Strategy:   opts.Strategy,
			Objective:  opts.Objective,
			DurationUS: res.Stats.Duration.Microseconds(),
		},
	})
}

func (req LayoutRequest) ratios() ([]float64, error) {
	switch {
	case len(req.AspectRatios) > 0 && len(req.Items) > 0:
		return nil, jerrors.New(jerrors.ErrCodeInvalidInput, "give aspect_ratios or items, not both")
	case len(req.Items) > 0:
		return gallery.Gallery{Items: req.Items}.AspectRatios()
	}
	return req.AspectRatios, nil
}

// defaults returns the server's option defaults with pipeline defaults
// filling the rest.
func (s *Server) defaults() pipeline.Options {
	d := s.cfg.Defaults
	d.SetDefaults()
	d.MaxExhaustiveItems = min(d.MaxExhaustiveItems, s.cfg.MaxExhaustiveItems)
	d.Logger = nil
	return d
}

// mergeOptions fills unset request options from defaults and caps the
// exhaustive search at maxExhaustive items.
func mergeOptions(req, def pipeline.Options, maxExhaustive int) pipeline.Options {
	if req.Margin == nil {
		req.Margin = def.Margin
	}
	if req.IdealHeight == 0 {
		req.IdealHeight = def.IdealHeight
	}
	if req.Objective == "" {
		req.Objective = def.Objective
	}
	if req.Strategy == "" {
		req.Strategy = def.Strategy
	}
	if req.Aggregation == "" {
		req.Aggregation = def.Aggregation
	}
	if req.MaxExhaustiveItems == 0 {
		req.MaxExhaustiveItems = def.MaxExhaustiveItems
	}
	if req.MaxExhaustiveItems > maxExhaustive {
		req.MaxExhaustiveItems = maxExhaustive
	}
	req.Concurrency = 1
	return req
}

// respondWithJSON sends a JSON response.
func (s *Server) respondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// respondWithError sends an ErrorResponse with the status for err's code.
func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := jerrors.GetCode(err)
	if code == "" {
		code = jerrors.ErrCodeInternal
	}

	msg := jerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	} else {
		s.logger.Debug("request rejected", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	s.respondWithJSON(w, status, ErrorResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Error:     ErrorBody{Code: string(code), Message: msg},
	})
}
