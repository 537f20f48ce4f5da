package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/han-yaeger/plotmill/internal/common"
	"github.com/han-yaeger/plotmill/internal/graphics"
)

// Pipeline is the slice of the task runner the preview server needs.
type Pipeline interface {
	Run(ctx context.Context, name string) error
	IsTask(name string) bool
}

// Service serves the assembled animation and individual frames over HTTP
// and lets clients trigger pipeline tasks.
type Service struct {
	gifPath    string
	framePath  func(i int) string
	frameCount int
	pipeline   Pipeline
}

func NewService(gifPath string, framePath func(i int) string, frameCount int, pipeline Pipeline) *Service {
	return &Service{
		gifPath:    gifPath,
		framePath:  framePath,
		frameCount: frameCount,
		pipeline:   pipeline,
	}
}

// SetRoutes registers the preview routes on the server.
func (service *Service) SetRoutes(e *echo.Echo) {
	e.GET("/probe", service.probeHandler)
	e.GET("/", service.indexHandler)
	e.GET("/img.gif", service.gifHandler)
	e.GET("/frames/:index", service.frameHandler)
	e.POST("/tasks", service.taskHandler)
}

func (service *Service) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

func (service *Service) indexHandler(ctx echo.Context) error {
	page := `<!DOCTYPE html>
<html>
<head><title>plotmill</title></head>
<body style="background:#111;text-align:center">
<img src="/img.gif" alt="animation" style="margin-top:2em;image-rendering:pixelated">
</body>
</html>`
	return ctx.HTML(http.StatusOK, page)
}

func (service *Service) gifHandler(ctx echo.Context) error {
	if _, err := os.Stat(service.gifPath); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "animation not generated yet")
	}
	return ctx.File(service.gifPath)
}

func (service *Service) frameHandler(ctx echo.Context) error {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 || index >= service.frameCount {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("frame index must be between 0 and %d", service.frameCount-1))
	}

	f, err := os.Open(service.framePath(index))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "frame not rendered yet")
	}
	defer func() {
		_ = f.Close()
	}()

	frame, err := graphics.DecodePPM(f)
	if err != nil {
		return fmt.Errorf("failed to decode frame %d: %w", index, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.RGBA()); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", index, err)
	}
	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// TaskRequest triggers one pipeline task by name.
type TaskRequest struct {
	Name string `json:"name" validate:"required"`
}

func (service *Service) taskHandler(ctx echo.Context) error {
	request := new(TaskRequest)
	if err := ctx.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	if !service.pipeline.IsTask(request.Name) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown task: %s", request.Name))
	}

	if err := service.pipeline.Run(ctx.Request().Context(), request.Name); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok", "task": request.Name})
}

// Serve runs the preview server until the context is cancelled, then shuts
// it down gracefully.
func (service *Service) Serve(ctx context.Context, port int) error {
	e := defineServer()
	service.SetRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("preview server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview server shutdown error: %w", err)
	}
	return nil
}

func defineServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Request logger skips the probe endpoint
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/probe"
		},
		LogStatus:  true,
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency,
					"error", v.Error)
			} else {
				slog.Info("request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency)
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Pre(middleware.RemoveTrailingSlash())

	e.Validator = &common.EchoValidator{}

	return e
}
