package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ramcalc/internal/estimator"
	"ramcalc/internal/form"
	"ramcalc/internal/registry"
	"ramcalc/internal/report"
	"ramcalc/pkg/types"
)

// Catalog is the model lookup used by the HTTP API layer.
type Catalog interface {
	List() []types.Model
	Get(id string) (types.Model, error)
}

// Estimate surfaces, used as metric and log labels.
const (
	surfacePage  = "page"
	surfaceAPI   = "api"
	surfaceQuery = "query"
	surfaceSweep = "sweep"
	surfaceModel = "model"
)

// NewMux builds the HTTP handler. cat may be nil when no models directory is
// configured; the model endpoints then report an empty list.
func NewMux(cat Catalog) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON and HTML
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/", handlePage)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/estimate", handleEstimateJSON)
		r.Get("/estimate", handleEstimateQuery)
		r.Get("/sweep", handleSweep)
		r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
			models := []types.Model{}
			if cat != nil {
				models = append(models, cat.List()...)
			}
			writeJSON(w, types.ModelsResponse{Models: models})
		})
		r.Get("/models/{id}", func(w http.ResponseWriter, r *http.Request) {
			handleModel(w, r, cat)
		})
		r.Post("/models/reload", func(w http.ResponseWriter, r *http.Request) {
			handleReload(w, r, cat)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if rd, ok := cat.(interface{ Ready() bool }); ok && !rd.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("loading"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// handlePage renders the calculator. Fields missing from the query keep their
// initial values; fields sent blank stay blank.
func handlePage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	values := pageDefaults.Merge(form.FromURL(r.URL.Query()))
	res := estimator.Estimate(form.Parse(values))
	RecordEstimate(surfacePage, res)

	var buf bytes.Buffer
	if err := report.WritePage(&buf, report.NewPage(values, res)); err != nil {
		logEstimate(r, surfacePage, http.StatusInternalServerError, start, res.Warnings, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
	logEstimate(r, surfacePage, http.StatusOK, start, res.Warnings, nil)
}

// handleEstimateJSON godoc
// @Summary      Estimate RAM
// @Description  Computes the memory breakdown for the supplied model and runtime values. Values are used as sent.
// @Tags         estimate
// @Accept       json
// @Produce      json
// @Param        request  body      types.EstimateRequest  true  "Estimate request"
// @Success      200      {object}  types.EstimateResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /v1/estimate [post]
func handleEstimateJSON(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Oversized bodies also land here; report them as invalid JSON.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		logEstimate(r, surfaceAPI, http.StatusBadRequest, start, nil, err)
		return
	}
	res := estimator.Estimate(form.FromRequest(req))
	if rejectNonFinite(w, r, surfaceAPI, start, res) {
		return
	}
	RecordEstimate(surfaceAPI, res)
	writeJSON(w, report.Response(res))
	logEstimate(r, surfaceAPI, http.StatusOK, start, res.Warnings, nil)
}

// handleEstimateQuery godoc
// @Summary      Estimate RAM from query values
// @Description  Same as POST /v1/estimate with the calculator field names as query parameters, normalized like the form.
// @Tags         estimate
// @Produce      json
// @Param        modelParamsB             query  number  false  "Parameters in billions"
// @Param        quantizationBits         query  int     false  "Bits per weight"
// @Param        contextLength            query  number  false  "Context length"
// @Param        batchSize                query  number  false  "Batch size"
// @Param        gpuVramGb                query  number  false  "GPU VRAM in GB"
// @Param        hiddenSize               query  number  false  "Hidden size"
// @Param        numLayers                query  number  false  "Number of layers"
// @Param        kvCacheQuantizationBits  query  string  false  "KV cache bits or same"
// @Success      200  {object}  types.EstimateResponse
// @Router       /v1/estimate [get]
func handleEstimateQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := estimator.Estimate(form.Parse(form.FromURL(r.URL.Query())))
	if rejectNonFinite(w, r, surfaceQuery, start, res) {
		return
	}
	RecordEstimate(surfaceQuery, res)
	writeJSON(w, report.Response(res))
	logEstimate(r, surfaceQuery, http.StatusOK, start, res.Warnings, nil)
}

// handleSweep godoc
// @Summary      Precision sweep
// @Description  Estimates the same configuration at several weight precisions. bits is a comma separated list and defaults to 4,8,16,32.
// @Tags         estimate
// @Produce      json
// @Param        bits  query  string  false  "Weight precisions, e.g. 4,8"
// @Success      200  {object}  types.SweepResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /v1/sweep [get]
func handleSweep(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	bits, err := parseBitsList(r.URL.Query().Get("bits"))
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEstimate(r, surfaceSweep, status, start, nil, err)
		return
	}
	points := estimator.Sweep(form.Parse(form.FromURL(r.URL.Query())), bits...)
	results := make([]estimator.Result, 0, len(points))
	for _, p := range points {
		results = append(results, p.Result)
	}
	if rejectNonFinite(w, r, surfaceSweep, start, results...) {
		return
	}
	var warnings []string
	for _, p := range points {
		RecordEstimate(surfaceSweep, p.Result)
		warnings = append(warnings, p.Result.Warnings...)
	}
	writeJSON(w, report.SweepResponse(points))
	logEstimate(r, surfaceSweep, http.StatusOK, start, warnings, nil)
}

// handleModel godoc
// @Summary      Model detail
// @Description  Returns the metadata of a discovered model, the calculator inputs prefilled from it and their estimate. Query values override the metadata.
// @Tags         models
// @Produce      json
// @Param        id  path  string  true  "Model id"
// @Success      200  {object}  types.ModelDetailResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /v1/models/{id} [get]
func handleModel(w http.ResponseWriter, r *http.Request, cat Catalog) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if cat == nil {
		err := registry.ErrModelNotFound(id)
		writeJSONError(w, http.StatusNotFound, err.Error())
		logEstimate(r, surfaceModel, http.StatusNotFound, start, nil, err)
		return
	}
	m, err := cat.Get(id)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEstimate(r, surfaceModel, status, start, nil, err)
		return
	}
	in := registry.Apply(m, form.Parse(form.FromURL(r.URL.Query())))
	res := estimator.Estimate(in)
	if rejectNonFinite(w, r, surfaceModel, start, res) {
		return
	}
	RecordEstimate(surfaceModel, res)
	writeJSON(w, types.ModelDetailResponse{Model: m, Inputs: form.Encode(in), Estimate: report.Response(res)})
	logEstimate(r, surfaceModel, http.StatusOK, start, res.Warnings, nil)
}

// handleReload godoc
// @Summary      Rescan models
// @Description  Rescans the models directory and returns the models found.
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /v1/models/reload [post]
func handleReload(w http.ResponseWriter, r *http.Request, cat Catalog) {
	if rl, ok := cat.(interface{ Reload() error }); ok {
		if err := rl.Reload(); err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
	}
	models := []types.Model{}
	if cat != nil {
		models = append(models, cat.List()...)
	}
	writeJSON(w, types.ModelsResponse{Models: models})
}

// rejectNonFinite answers 400 when any result overflowed.
func rejectNonFinite(w http.ResponseWriter, r *http.Request, surface string, start time.Time, results ...estimator.Result) bool {
	for _, res := range results {
		if err := report.CheckFinite(res); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			logEstimate(r, surface, http.StatusBadRequest, start, res.Warnings, err)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// parseBitsList reads "4,8,16" into precisions. Empty means the default set.
func parseBitsList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || !(v > 0) {
			return nil, &badRequestError{msg: "invalid bits value: " + part}
		}
		out = append(out, v)
	}
	return out, nil
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string   { return e.msg }
func (e *badRequestError) StatusCode() int { return http.StatusBadRequest }
