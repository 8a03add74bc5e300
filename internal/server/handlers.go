package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/ecotrip/co2calc/internal/carbon"
	"github.com/ecotrip/co2calc/internal/metrics"
	"github.com/ecotrip/co2calc/internal/report"
	"github.com/ecotrip/co2calc/internal/share"
)

// Error codes returned in the "code" field of error bodies.
const (
	codeInvalidInput = "INVALID_INPUT"
	codeInvalidBody  = "INVALID_BODY"
	codeInvalidQuery = "INVALID_QUERY"
	codeRateLimited  = "RATE_LIMITED"
	codeNotFound     = "NOT_FOUND"
	codeInternal     = "INTERNAL"
)

const exportBaseName = "pegada-de-carbono"

// FootprintResponse is the body of a successful calculation.
type FootprintResponse struct {
	RequestID string        `json:"request_id"`
	Result    carbon.Result `json:"result"`
	View      report.View   `json:"view"`
	Share     []share.Link  `json:"share"`
}

// EquivalencesResponse is the body of GET /api/v1/equivalences.
type EquivalencesResponse struct {
	TotalKg      float64             `json:"total_kg"`
	Equivalences carbon.Equivalences `json:"equivalences"`
	Comparison   carbon.Comparison   `json:"comparison"`
}

// ShareResponse is the body of GET /api/v1/share.
type ShareResponse struct {
	Total string       `json:"total"`
	Links []share.Link `json:"links"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// calculate handles POST /api/v1/footprint.
func (s *Server) calculate(c *gin.Context) {
	result, ok := s.calculateRequest(c)
	if !ok {
		return
	}

	writeJSON(c, http.StatusOK, FootprintResponse{
		RequestID: getRequestID(c),
		Result:    result,
		View:      report.NewView(result),
		Share:     s.sharer.Links(result.AnnualKg),
	})
}

// export handles POST /api/v1/footprint/export?format=xlsx.
func (s *Server) export(c *gin.Context) {
	format, err := report.ParseFormat(c.DefaultQuery("format", string(report.FormatCSV)))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidQuery, err.Error())
		return
	}

	result, ok := s.calculateRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, report.NewView(result)); err != nil {
		s.logger.Error().Err(err).Str("request_id", getRequestID(c)).Str("format", string(format)).Msg("export failed")
		writeError(c, http.StatusInternalServerError, codeInternal, "export failed")
		return
	}
	metrics.RecordExport(string(format))

	ext := string(format)
	if format == report.FormatText {
		ext = "txt"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, exportBaseName, ext))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// formSchema handles GET /api/v1/form.
func (s *Server) formSchema(c *gin.Context) {
	writeJSON(c, http.StatusOK, s.schema)
}

// factors handles GET /api/v1/factors.
func (s *Server) factors(c *gin.Context) {
	writeJSON(c, http.StatusOK, carbon.Tables{
		Factors:      s.estimator.Factors(),
		Equivalences: s.estimator.Equivalences(),
	})
}

// equivalences handles GET /api/v1/equivalences?total=<kg>.
func (s *Server) equivalences(c *gin.Context) {
	total, ok := totalQuery(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, EquivalencesResponse{
		TotalKg:      total,
		Equivalences: carbon.ComputeEquivalences(total, s.estimator.Equivalences()),
		Comparison:   carbon.Compare(total),
	})
}

// shareLinks handles GET /api/v1/share?total=<kg>.
func (s *Server) shareLinks(c *gin.Context) {
	total, ok := totalQuery(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, ShareResponse{
		Total: share.FormatTotal(total),
		Links: s.sharer.Links(total),
	})
}

// calculateRequest decodes the request body and runs the estimator. It
// writes the error reply itself and reports false on failure.
func (s *Server) calculateRequest(c *gin.Context) (carbon.Result, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	in, err := s.decodeInput(c)
	if err != nil {
		if errors.Is(err, carbon.ErrInvalidInput) {
			writeError(c, http.StatusBadRequest, codeInvalidInput, err.Error())
		} else {
			writeError(c, http.StatusBadRequest, codeInvalidBody, err.Error())
		}
		metrics.RecordCalculation(metrics.SourceHTTP, 0, 0, err)
		return carbon.Result{}, false
	}

	start := time.Now()
	result, err := s.estimator.Calculate(in)
	metrics.RecordCalculation(metrics.SourceHTTP, time.Since(start), result.AnnualKg, err)
	if err != nil {
		if errors.Is(err, carbon.ErrInvalidInput) {
			writeError(c, http.StatusBadRequest, codeInvalidInput, err.Error())
		} else {
			s.logger.Error().Err(err).Str("request_id", getRequestID(c)).Msg("calculation failed")
			writeError(c, http.StatusInternalServerError, codeInternal, "calculation failed")
		}
		return carbon.Result{}, false
	}

	s.logger.Debug().
		Str("request_id", getRequestID(c)).
		Str("transport_mode", in.TransportMode).
		Str("diet", in.Diet).
		Float64("annual_kg", result.AnnualKg).
		Msg("footprint calculated")
	return result, true
}

// decodeInput accepts a JSON Input or the calculator form fields, urlencoded
// or multipart.
func (s *Server) decodeInput(c *gin.Context) (carbon.Input, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var in carbon.Input
		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return carbon.Input{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		return s.schema.Normalize(in), nil
	}

	if err := c.Request.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return carbon.Input{}, fmt.Errorf("invalid form body: %w", err)
	}
	return s.schema.Parse(c.Request.PostForm)
}

// totalQuery reads the lenient "total" query parameter. Negative totals are
// rejected; non-numeric totals read as zero.
func totalQuery(c *gin.Context) (float64, bool) {
	raw, present := c.GetQuery("total")
	if !present {
		writeError(c, http.StatusBadRequest, codeInvalidQuery, "missing total")
		return 0, false
	}
	total := carbon.ParseOrZero(raw)
	if total < 0 {
		writeError(c, http.StatusBadRequest, codeInvalidQuery, "total must not be negative")
		return 0, false
	}
	return total, true
}

// writeJSON encodes v and writes it with status. A value that cannot be
// encoded is replaced by an INTERNAL error body.
func writeJSON(c *gin.Context, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		_ = c.Error(err)
		b, _ = json.Marshal(ErrorResponse{
			Error:     "response encoding failed",
			Code:      codeInternal,
			RequestID: getRequestID(c),
		})
		status = http.StatusInternalServerError
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

func writeError(c *gin.Context, status int, code, msg string) {
	writeJSON(c, status, ErrorResponse{Error: msg, Code: code, RequestID: getRequestID(c)})
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	writeError(c, status, code, msg)
	c.Abort()
}
