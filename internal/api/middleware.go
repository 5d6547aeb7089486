package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ObserveRequests logs every request and records it in the HTTP metrics.
// Chain errors are rendered here so that the logged status is final.
func (handler *Handler) ObserveRequests(c *fiber.Ctx) error {
	started := time.Now()

	if err := c.Next(); err != nil {
		if renderErr := c.App().ErrorHandler(c, err); renderErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	elapsed := time.Since(started)
	status := c.Response().StatusCode()
	route := c.Route().Path
	if status == fiber.StatusNotFound && route == "/" {
		route = "unmatched"
	}
	handler.metrics.ObserveHTTPRequest(c.Method(), route, status, elapsed)

	entry := handler.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency_ms": elapsed.Milliseconds(),
	})
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("request failed")
	case status >= fiber.StatusBadRequest:
		entry.Info("request rejected")
	default:
		entry.Debug("request served")
	}
	return nil
}

func (handler *Handler) RateLimit(limiter *clientRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter.allow(requestLimiterKey(c), limiter.now()) {
			return c.Next()
		}
		handler.metrics.RecordRateLimited()
		c.Set(fiber.HeaderRetryAfter, rateLimitRetryAfter)
		return apiError(c, fiber.StatusTooManyRequests, "rate limit exceeded")
	}
}

// ErrorHandler renders errors that escaped a handler, such as recovered
// panics and fiber's own routing errors, as the JSON error body.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		handler.logger.WithError(err).WithField("request_id", requestID(c)).Error("unhandled request error")
	}
	return apiError(c, status, message)
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(contextRequestIDKey).(string)
	return value
}
