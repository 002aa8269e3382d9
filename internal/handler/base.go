package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/todo-service/internal/errs"
	"github.com/deppfellow/todo-service/internal/metrics"
	"github.com/deppfellow/todo-service/internal/middleware"
	"github.com/deppfellow/todo-service/internal/response"
	"github.com/deppfellow/todo-service/internal/server"
	"github.com/deppfellow/todo-service/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger and connections
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives an already validated
// request and returns the success value or an error.
//
// Req is a pointer type (e.g. *AddTodoRequest) so Bind can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// handleRequest is the shared execution pipeline for API endpoints:
//
//   - bind + validate; on failure the controller is never reached
//   - exactly one controller call per valid request
//   - controller errors are classified before reaching the error handler
//   - structured logging, New Relic attributes and Prometheus metrics
//   - the success value is written through response.Write
func handleRequest[Req validation.Validatable, Res any](
	c echo.Context,
	operation string,
	req Req,
	handler HandlerFunc[Req, Res],
) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
		txn.AddAttribute("handler.operation", operation)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("route", c.Path()).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		metrics.RecordRequest(operation, metrics.OutcomeValidationError, time.Since(start))

		// the global error handler renders it
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			httpErr = errs.NewControllerError(err)
		}

		logger.Error().
			Err(err).
			Int("status", httpErr.Status).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}

		metrics.RecordRequest(operation, metrics.OutcomeControllerError, totalDuration)

		return httpErr
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	metrics.RecordRequest(operation, metrics.OutcomeSuccess, totalDuration)

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return response.Write(c, response.Ok(result))
}

// Handle wraps a typed handler into an echo.HandlerFunc.
//
// newReq is called once per request so bound values never leak between
// requests.
//
//	g.POST("/add", Handle("add_todo", h.AddTodo, func() *AddTodoRequest { return &AddTodoRequest{} }))
func Handle[Req validation.Validatable, Res any](
	operation string,
	handler HandlerFunc[Req, Res],
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, operation, newReq(), handler)
	}
}
