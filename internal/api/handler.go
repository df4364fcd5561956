package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"schedsim/internal/sched"
)

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *ServerConfig
}

func NewSchedulerHandlerImpl(config *ServerConfig) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config}
}

// NewApp wires the handler into a fiber app under /api/v1.
func NewApp(config *ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "schedsim",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	var h SchedulerHandler = NewSchedulerHandlerImpl(config)
	v1 := app.Group("/api").Group("/v1")
	{
		v1.Post("/all", h.AllAlgorithms)
		v1.Post("/:algorithm", h.Schedule)
		v1.Get("/health", h.Health)
	}
	return app
}

// Schedule runs the algorithm named by the :algorithm path segment.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	alg, err := sched.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return respondError(ctx, err)
	}

	procs, cfg, err := parseRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := sched.Simulate(alg, procs, cfg, s.config.Options())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(newScheduleResponse(res, ctx.QueryBool("trace")))
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	procs, cfg, err := parseRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := sched.SimulateAll(procs, cfg, s.config.Options())
	if err != nil {
		return respondError(ctx, err)
	}

	withTrace := ctx.QueryBool("trace")
	response := make([]ScheduleResponse, len(results))
	for i, res := range results {
		response[i] = newScheduleResponse(res, withTrace)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func parseRequest(ctx *fiber.Ctx) ([]sched.Process, sched.RunConfig, error) {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return nil, sched.RunConfig{}, &sched.InputFormatError{Err: err}
	}
	procs, err := request.toProcesses()
	if err != nil {
		return nil, sched.RunConfig{}, err
	}
	return procs, sched.RunConfig{ContextSwitch: request.ContextSwitch, Quantum: request.Quantum}, nil
}

// respondError answers validation errors with a 400. Anything else is
// unexpected, gets logged and becomes a 500.
func respondError(ctx *fiber.Ctx, err error) error {
	var (
		formatErr *sched.InputFormatError
		configErr *sched.InvalidConfigError
	)
	status := fiber.StatusBadRequest
	switch {
	case errors.As(err, &formatErr), errors.As(err, &configErr), errors.Is(err, sched.ErrEmptyInput):
	default:
		log.Println("schedule request failed:", err)
		status = fiber.StatusInternalServerError
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
