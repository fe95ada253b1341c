package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"xraysim/internal/config"
	"xraysim/internal/service"
)

// Acquisition defaults used when a request leaves current or voltage out.
const (
	DefaultCurrent = 200.0
	DefaultVoltage = 70.0
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.RadiographService, rc config.RenderConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	app.Get("/simulate", Simulate(svc, rc))
	app.Get("/simulate/summary", SimulateSummary(svc, rc))

	app.Post("/radiographs", CreateRadiograph(svc, rc))
	app.Get("/radiographs", ListRadiographs(svc))
	app.Get("/radiographs/:id", GetRadiograph(svc))
	app.Get("/radiographs/:id/content", RadiographContent(svc))
	app.Get("/radiographs/:id/download", DownloadRadiograph(svc))
	app.Delete("/radiographs/:id", DeleteRadiograph(svc))
}

// HealthCheck reports whether the database answers a ping.
//
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || db.PingContext(ctx) != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// Liveness always answers 200.
//
// @Summary Liveness check
// @Tags health
// @Success 200
// @Router /healthz [get]
func Liveness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Simulate renders a radiograph and returns the encoded image.
//
// @Summary Render a simulated radiograph
// @Tags simulate
// @Produce image/png
// @Produce image/tiff
// @Param current query number false "tube current (mA)" default(200)
// @Param voltage query number false "tube voltage (kVp)" default(70)
// @Param width query int false "image width (px)" default(256)
// @Param height query int false "image height (px)" default(256)
// @Param seed query int false "reserved, ignored"
// @Param format query string false "png or tiff" default(png)
// @Success 200 {file} binary
// @Failure 400 {object} errorPayload
// @Router /simulate [get]
func Simulate(svc service.RadiographService, rc config.RenderConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := renderRequestFromQuery(c, rc)
		if err != nil {
			return writeBadParam(c, err)
		}

		res, err := svc.Render(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set("X-Xray-I0", strconv.FormatFloat(res.Summary.I0, 'f', 6, 64))
		c.Set("X-Xray-Mu", strconv.FormatFloat(res.Summary.Mu, 'f', 6, 64))
		c.Set(fiber.HeaderContentType, res.ContentType)
		return c.Send(res.Data)
	}
}

// SimulateSummary computes a radiograph and reports I0, mu and field statistics.
//
// @Summary Summarize a simulated radiograph
// @Tags simulate
// @Produce json
// @Param current query number false "tube current (mA)" default(200)
// @Param voltage query number false "tube voltage (kVp)" default(70)
// @Param width query int false "image width (px)" default(256)
// @Param height query int false "image height (px)" default(256)
// @Param seed query int false "reserved, ignored"
// @Success 200 {object} service.Summary
// @Failure 400 {object} errorPayload
// @Router /simulate/summary [get]
func SimulateSummary(svc service.RadiographService, rc config.RenderConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := renderRequestFromQuery(c, rc)
		if err != nil {
			return writeBadParam(c, err)
		}

		sum, err := svc.Summarize(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sum)
	}
}

// CreateRadiograph renders a radiograph and stores it.
//
// @Summary Export a radiograph to object storage
// @Tags radiographs
// @Accept json
// @Produce json
// @Param body body renderBody true "acquisition parameters"
// @Success 201 {object} model.Radiograph
// @Failure 400 {object} errorPayload
// @Router /radiographs [post]
func CreateRadiograph(svc service.RadiographService, rc config.RenderConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body renderBody
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}

		rec, err := svc.Export(c.UserContext(), body.toRequest(rc))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListRadiographs lists stored radiographs with limit & offset.
//
// @Summary List radiographs
// @Tags radiographs
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.RadiographListResult
// @Failure 400 {object} errorPayload
// @Router /radiographs [get]
func ListRadiographs(svc service.RadiographService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetRadiograph returns a radiograph record by ID.
//
// @Summary Get a radiograph
// @Tags radiographs
// @Produce json
// @Param id path string true "radiograph id"
// @Success 200 {object} model.Radiograph
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /radiographs/{id} [get]
func GetRadiograph(svc service.RadiographService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := radiographID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// RadiographContent streams the stored image.
//
// @Summary Stream a stored radiograph image
// @Tags radiographs
// @Produce image/png
// @Produce image/tiff
// @Param id path string true "radiograph id"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /radiographs/{id}/content [get]
func RadiographContent(svc service.RadiographService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := radiographID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rec, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, rec.ContentType)
		// fasthttp closes rc once the body has been written
		return c.SendStream(rc, int(rec.Size))
	}
}

// DownloadRadiograph redirects to a presigned URL for the stored image.
//
// @Summary Download a stored radiograph
// @Tags radiographs
// @Param id path string true "radiograph id"
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /radiographs/{id}/download [get]
func DownloadRadiograph(svc service.RadiographService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := radiographID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// DeleteRadiograph removes a radiograph and its stored image.
//
// @Summary Delete a radiograph
// @Tags radiographs
// @Param id path string true "radiograph id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /radiographs/{id} [delete]
func DeleteRadiograph(svc service.RadiographService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := radiographID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func radiographID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// writeServiceError maps service errors onto the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidShape):
		return writeError(c, fiber.StatusBadRequest, "INVALID_SHAPE", "width and height must be positive and within the render limit")
	case errors.Is(err, service.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "format must be png or tiff")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "radiograph not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
