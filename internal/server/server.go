package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// RequestIDHeader carries the identifier assigned to every request.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	formatter     format.Formatter
}

// NewHandler constructs the HTTP handler that serves the web UI and schedule API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		formatter:     format.NewLocaleFormatter(),
	}

	mux := http.NewServeMux()

	// Schedule API endpoints; all accept the same form or JSON body.
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/schedule/html", h.handleScheduleHTML)
	mux.HandleFunc("/api/schedule/csv", h.handleScheduleCSV)

	// Selectable languages and currencies for the UI dropdowns
	mux.HandleFunc("/api/options", h.handleOptions)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return withRequestID(mux)
}

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ulid.Make().String()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", requestID(r)))
}

// textField accepts either a JSON string or a JSON number and keeps the
// literal text, so numeric inputs go through the same parser as form fields.
type textField string

func (f *textField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = textField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", string(trimmed))
	}
	*f = textField(n.String())
	return nil
}

type scheduleRequest struct {
	Principal    textField `json:"principal"`
	InterestRate textField `json:"interestRate"`
	Years        textField `json:"years"`
	Language     textField `json:"language"`
	Currency     textField `json:"currency"`
}

func (s scheduleRequest) toReport() report.Request {
	return report.Request{
		Principal:    string(s.Principal),
		InterestRate: string(s.InterestRate),
		Years:        string(s.Years),
		Language:     string(s.Language),
		Currency:     string(s.Currency),
	}
}

type scheduleResponse struct {
	RequestID      string                       `json:"requestId"`
	Language       string                       `json:"language"`
	Currency       string                       `json:"currency"`
	Parameters     amortization.LoanParameters  `json:"parameters"`
	TermMonths     int                          `json:"termMonths"`
	MonthlyPayment float64                      `json:"monthlyPayment"`
	TotalPayback   float64                      `json:"totalPayback"`
	TotalInterest  float64                      `json:"totalInterest"`
	Formatted      report.Summary               `json:"formatted"`
	Columns        []string                     `json:"columns"`
	Records        []amortization.MonthlyRecord `json:"records"`
	Rows           []report.Row                 `json:"rows"`
	Duration       string                       `json:"duration"`
}

type optionsResponse struct {
	Languages  []format.Choice `json:"languages"`
	Currencies []format.Choice `json:"currencies"`
	Defaults   report.Request  `json:"defaults"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	start := time.Now()

	rep, ok := h.calculate(w, r, op)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	response := scheduleResponse{
		RequestID:      requestID(r),
		Language:       rep.Language,
		Currency:       rep.Currency,
		Parameters:     rep.Schedule.Parameters,
		TermMonths:     rep.Schedule.TermMonths,
		MonthlyPayment: rep.Schedule.MonthlyPayment,
		TotalPayback:   rep.Schedule.TotalPayback,
		TotalInterest:  rep.Schedule.TotalInterest,
		Formatted:      rep.Summary,
		Columns:        report.Columns,
		Records:        rep.Schedule.Records,
		Rows:           rep.Rows,
		Duration:       elapsed.String(),
	}

	h.requestLogger(r).Info("schedule computed",
		zap.String("op", op),
		zap.Int("months", response.TermMonths),
		zap.Float64("monthlyPayment", response.MonthlyPayment),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleScheduleHTML(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleHTML"

	rep, ok := h.calculate(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.HTMLFragment(&buf, rep); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render schedule: %v", err), op)
		return
	}
	h.writeBody(w, r, "text/html; charset=utf-8", buf.Bytes(), op)
}

func (h *handler) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleCSV"

	rep, ok := h.calculate(w, r, op)
	if !ok {
		return
	}

	csvStr, err := output.CsvString(rep)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render schedule: %v", err), op)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	h.writeBody(w, r, "text/csv; charset=utf-8", []byte(csvStr), op)
}

func (h *handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, optionsResponse{
		Languages:  format.SupportedLanguages(),
		Currencies: format.SupportedCurrencies(),
		Defaults: report.Request{
			Principal:    constants.DefaultPrincipal,
			InterestRate: constants.DefaultInterestRate,
			Years:        constants.DefaultTermYears,
			Language:     constants.DefaultLanguage,
			Currency:     constants.DefaultCurrency,
		},
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// calculate decodes the request and runs the calculation, writing an error
// response and returning false on failure.
func (h *handler) calculate(w http.ResponseWriter, r *http.Request, op string) (report.Report, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return report.Report{}, false
	}

	req, status, err := h.decodeRequest(w, r)
	if err != nil {
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return report.Report{}, false
	}

	rep, err := report.Calculate(h.requestLogger(r), h.formatter, req)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return report.Report{}, false
	}
	return rep, true
}

func isClientError(err error) bool {
	return errors.Is(err, amortization.ErrInvalidInput) ||
		errors.Is(err, format.ErrUnsupportedLanguage) ||
		errors.Is(err, format.ErrUnsupportedCurrency)
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request) (report.Request, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return report.Request{}, bodyErrorStatus(err), h.bodyError(err)
		}
		var payload scheduleRequest
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return report.Request{}, http.StatusBadRequest, fmt.Errorf("failed to decode request: %v", err)
			}
		}
		return payload.toReport(), http.StatusOK, nil
	}

	if err := r.ParseForm(); err != nil {
		return report.Request{}, bodyErrorStatus(err), h.bodyError(err)
	}
	return report.Request{
		Principal:    r.PostFormValue("principal"),
		InterestRate: r.PostFormValue("interestRate"),
		Years:        r.PostFormValue("years"),
		Language:     r.PostFormValue("language"),
		Currency:     r.PostFormValue("currency"),
	}, http.StatusOK, nil
}

func bodyErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *handler) bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("request exceeds limit of %d bytes", h.maxUploadSize)
	}
	return fmt.Errorf("failed to read request: %v", err)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Warn("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte, op string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.requestLogger(r).Error("failed to write response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// Run serves the handler on cfg.Address until ctx is cancelled, then shuts
// down gracefully within the configured shutdown timeout.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	srv := &http.Server{
		Addr:           cfg.Address,
		Handler:        NewHandler(logger, cfg.UploadSizeBytes(), version),
		ReadTimeout:    cfg.ReadTimeoutDuration(),
		WriteTimeout:   cfg.WriteTimeoutDuration(),
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting loan calculator server",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down loan calculator server",
		zap.String("op", "server.Run"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err, ok := <-errCh; ok {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
