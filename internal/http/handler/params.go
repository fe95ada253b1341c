package handler

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"xraysim/internal/config"
	"xraysim/internal/service"
)

// paramError names the query parameter that failed to parse.
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string { return e.message }

func writeBadParam(c *fiber.Ctx, err error) error {
	if pe, ok := err.(*paramError); ok {
		return writeError(c, fiber.StatusBadRequest, pe.code, pe.message)
	}
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
}

func queryFloat(c *fiber.Ctx, key string, def float64, code string) (float64, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &paramError{code: code, message: "invalid " + key}
	}
	return v, nil
}

func queryInt(c *fiber.Ctx, key string, def int, code string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &paramError{code: code, message: "invalid " + key}
	}
	return v, nil
}

// renderRequestFromQuery reads current, voltage, width, height, format and seed.
// Absent values take the front-panel defaults and the configured image size.
func renderRequestFromQuery(c *fiber.Ctx, rc config.RenderConfig) (service.RenderRequest, error) {
	var (
		req service.RenderRequest
		err error
	)
	if req.Current, err = queryFloat(c, "current", DefaultCurrent, "INVALID_CURRENT"); err != nil {
		return req, err
	}
	if req.Voltage, err = queryFloat(c, "voltage", DefaultVoltage, "INVALID_VOLTAGE"); err != nil {
		return req, err
	}
	if req.Width, err = queryInt(c, "width", rc.DefaultWidth, "INVALID_WIDTH"); err != nil {
		return req, err
	}
	if req.Height, err = queryInt(c, "height", rc.DefaultHeight, "INVALID_HEIGHT"); err != nil {
		return req, err
	}
	req.Format = c.Query("format")

	if s := c.Query("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return req, &paramError{code: "INVALID_SEED", message: "invalid seed"}
		}
		req.Seed = &seed
	}
	return req, nil
}

// renderBody is the JSON body of POST /radiographs. Omitted fields take defaults.
type renderBody struct {
	Current *float64 `json:"current_ma"`
	Voltage *float64 `json:"voltage_kvp"`
	Width   *int     `json:"width"`
	Height  *int     `json:"height"`
	Format  string   `json:"format"`
	Seed    *int64   `json:"seed"`
}

func (b renderBody) toRequest(rc config.RenderConfig) service.RenderRequest {
	req := service.RenderRequest{
		Current: DefaultCurrent,
		Voltage: DefaultVoltage,
		Width:   rc.DefaultWidth,
		Height:  rc.DefaultHeight,
		Format:  b.Format,
		Seed:    b.Seed,
	}
	if b.Current != nil {
		req.Current = *b.Current
	}
	if b.Voltage != nil {
		req.Voltage = *b.Voltage
	}
	if b.Width != nil {
		req.Width = *b.Width
	}
	if b.Height != nil {
		req.Height = *b.Height
	}
	return req
}
