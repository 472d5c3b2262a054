package main

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

//region API types

type (
	ProcessRequest struct {
		ProcessID   int64 `json:"process_id"`
		ArrivalTime int64 `json:"arrival_time"`
		BurstTime   int64 `json:"burst_time"`
		Priority    int64 `json:"priority"`
	}
	ScheduleRequest struct {
		Quantum   int64            `json:"quantum"`
		Processes []ProcessRequest `json:"processes"`
	}

	ProcessResponse struct {
		ProcessID      int64 `json:"process_id"`
		ArrivalTime    int64 `json:"arrival_time"`
		BurstTime      int64 `json:"burst_time"`
		Priority       int64 `json:"priority"`
		WaitingTime    int64 `json:"waiting_time"`
		TurnAroundTime int64 `json:"turn_around_time"`
		CompletionTime int64 `json:"completion_time"`
	}
	SliceResponse struct {
		PID   int64 `json:"pid"`
		Start int64 `json:"start"`
		Stop  int64 `json:"stop"`
	}
	ScheduleResponse struct {
		Algorithm             string            `json:"algorithm"`
		Quantum               int64             `json:"quantum,omitempty"`
		AverageWaitingTime    float64           `json:"average_waiting_time"`
		AverageTurnAroundTime float64           `json:"average_turn_around_time"`
		Throughput            float64           `json:"throughput"`
		CpuUtilization        float64           `json:"cpu_utilization"`
		Details               []ProcessResponse `json:"details"`
		Gantt                 []SliceResponse   `json:"gantt"`
	}
	CompareResponse struct {
		Quantum        int64              `json:"quantum"`
		Results        []ScheduleResponse `json:"results"`
		BestWaiting    string             `json:"best_waiting"`
		BestTurnAround string             `json:"best_turn_around"`
		BestOverall    string             `json:"best_overall"`
		Rationale      string             `json:"rationale"`
	}
)

// batch numbers processes by position unless the request gives ids.
func (r ScheduleRequest) batch() Batch {
	b := make(Batch, len(r.Processes))
	for i, p := range r.Processes {
		b[i] = Process{
			ProcessID:     p.ProcessID,
			ArrivalTime:   p.ArrivalTime,
			BurstDuration: p.BurstTime,
			Priority:      p.Priority,
		}
		if b[i].ProcessID == 0 {
			b[i].ProcessID = int64(i + 1)
		}
	}
	return b
}

func newScheduleResponse(s Schedule, m Metrics) ScheduleResponse {
	resp := ScheduleResponse{
		Algorithm:             s.Algorithm.String(),
		Quantum:               s.Quantum,
		AverageWaitingTime:    m.AverageWaiting,
		AverageTurnAroundTime: m.AverageTurnaround,
		Throughput:            m.Throughput,
		CpuUtilization:        m.Utilization,
		Details:               make([]ProcessResponse, 0, len(s.Processes)),
		Gantt:                 make([]SliceResponse, 0, len(s.Gantt)),
	}
	for _, p := range s.Processes.ByID() {
		resp.Details = append(resp.Details, ProcessResponse{
			ProcessID:      p.ProcessID,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstDuration,
			Priority:       p.Priority,
			WaitingTime:    p.WaitingTime,
			TurnAroundTime: p.TurnaroundTime,
			CompletionTime: p.CompletionTime,
		})
	}
	for _, ts := range s.Gantt {
		resp.Gantt = append(resp.Gantt, SliceResponse{PID: ts.PID, Start: ts.Start, Stop: ts.Stop})
	}
	return resp
}

//endregion

type SchedulerHandler struct {
	config SchedulerConfig
}

func NewSchedulerHandler(config SchedulerConfig) *SchedulerHandler {
	return &SchedulerHandler{config: config}
}

// newApp wires the handler into a fiber app under /api/v1.
func newApp(h *SchedulerHandler, requestLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	if requestLog {
		app.Use(fiberlogger.New())
	}

	v1 := app.Group("/api").Group("/v1")
	{
		v1.Post("/compare", h.Compare)
		v1.Post("/:algorithm", h.Schedule)
	}
	return app
}

// Schedule runs one algorithm, or every algorithm when the path says "all".
func (h *SchedulerHandler) Schedule(ctx *fiber.Ctx) error {
	req, err := h.parse(ctx)
	if err != nil {
		return err
	}

	algs := Algorithms
	if name := ctx.Params("algorithm"); name != "all" {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		algs = []Algorithm{alg}
	}

	responses := make([]ScheduleResponse, 0, len(algs))
	for _, alg := range algs {
		s, err := Run(alg, req.batch(), req.Quantum)
		if err != nil {
			return err
		}
		m, err := Summarize(s)
		if err != nil {
			return err
		}
		responses = append(responses, newScheduleResponse(s, m))
	}

	if len(responses) == 1 {
		return ctx.JSON(responses[0])
	}
	return ctx.JSON(responses)
}

func (h *SchedulerHandler) Compare(ctx *fiber.Ctx) error {
	req, err := h.parse(ctx)
	if err != nil {
		return err
	}

	c, err := Compare(req.batch(), req.Quantum)
	if err != nil {
		return err
	}

	resp := CompareResponse{
		Quantum:        c.Quantum,
		Results:        make([]ScheduleResponse, 0, len(c.Results)),
		BestWaiting:    c.BestWaiting.String(),
		BestTurnAround: c.BestTurnaround.String(),
		BestOverall:    c.BestOverall.String(),
		Rationale:      c.BestOverall.Rationale(),
	}
	for _, r := range c.Results {
		resp.Results = append(resp.Results, newScheduleResponse(r.Schedule, r.Metrics))
	}
	return ctx.JSON(resp)
}

// parse decodes the body and fills in the configured quantum when none is given.
func (h *SchedulerHandler) parse(ctx *fiber.Ctx) (ScheduleRequest, error) {
	var req ScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid request format")
	}
	if req.Quantum == 0 {
		req.Quantum = h.config.RoundRobinTimeQuantum
	}
	return req, nil
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, ErrEmptyBatch), errors.Is(err, ErrInvalidProcess), errors.Is(err, ErrInvalidParameter):
		code = fiber.StatusBadRequest
	}
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func serve(cfg SchedulerConfig) error {
	app := newApp(NewSchedulerHandler(cfg), true)
	logger.Printf("listening on :%d", cfg.Port)
	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}
