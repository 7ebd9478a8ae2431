package controller

import (
	"ikigai-interview-be/internal/dto"
	"ikigai-interview-be/internal/pkg/serverutils"
	"ikigai-interview-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	AnalyzeMessage(ctx *fiber.Ctx) error
	FinalizeAnalysis(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type interviewController struct {
	interviewService service.IInterviewService
	analysisService  service.IAnalysisService
}

func NewInterviewController(
	interviewService service.IInterviewService,
	analysisService service.IAnalysisService,
) IInterviewController {
	return &interviewController{
		interviewService: interviewService,
		analysisService:  analysisService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Post("/start", c.Start)
	h.Post("/message", c.SendMessage)
	h.Post("/end", c.End)
	h.Post("/analyze", c.Analyze)
	h.Post("/analyze-message", c.AnalyzeMessage)
	h.Post("/finalize-analysis", c.FinalizeAnalysis)
	h.Get("/transcript/:sessionId", c.Transcript)
	h.Get("/history", c.History)
	h.Get("/session/:sessionId", c.Session)
}

func (c *interviewController) Start(ctx *fiber.Ctx) error {
	res, err := c.interviewService.Start(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start interview", res))
}

func (c *interviewController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *interviewController) End(ctx *fiber.Ctx) error {
	var req dto.EndInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.End(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end interview", res))
}

func (c *interviewController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze interview", res))
}

func (c *interviewController) AnalyzeMessage(ctx *fiber.Ctx) error {
	var req dto.AnalyzeMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.AnalyzeMessage(ctx.Context(), req.SessionID, *req.MessageIndex)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze message", res))
}

func (c *interviewController) FinalizeAnalysis(ctx *fiber.Ctx) error {
	var req dto.FinalizeAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Finalize(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success finalize analysis", res))
}

func (c *interviewController) Transcript(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.interviewService.Transcript(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}

func (c *interviewController) History(ctx *fiber.Ctx) error {
	res, err := c.interviewService.History(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *interviewController) Session(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.interviewService.Result(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session result", res))
}
