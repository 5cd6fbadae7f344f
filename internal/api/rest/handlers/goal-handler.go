package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/dto"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/services"
	"github.com/stridepath/goal_service/pkg/utils"
)

type GoalHandler struct {
	svc  services.GoalService
	auth helper.Auth
}

func NewGoalHandler(svc services.GoalService, auth helper.Auth) *GoalHandler {
	return &GoalHandler{svc: svc, auth: auth}
}

func (h *GoalHandler) SetupRoutes(app *fiber.App, authRequired fiber.Handler) {
	goals := app.Group("/goals", authRequired)

	goals.Post("/", h.CreateGoal)
	goals.Get("/", h.ListGoals)
	goals.Get("/:goalID", h.GetGoal)
	goals.Put("/:goalID", h.UpdateGoal)
	goals.Delete("/:goalID", h.DeleteGoal)

	goals.Post("/:goalID/steps/", h.CreateStep)
	goals.Put("/:goalID/steps/:stepID", h.UpdateStep)
}

func (h *GoalHandler) owner(ctx *fiber.Ctx) (uint, error) {
	user, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func parseIDParam(ctx *fiber.Ctx, name string) (uint, bool) {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *GoalHandler) CreateGoal(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}

	var requestBody dto.GoalCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := helper.ValidateStruct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "title is required")
	}

	goal, err := h.svc.CreateGoal(ownerID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, goal)
}

func (h *GoalHandler) ListGoals(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}

	var statusFilter *domain.GoalStatus
	if raw := ctx.Query("status"); raw != "" {
		status := domain.GoalStatus(raw)
		if !status.Valid() {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid status filter")
		}
		statusFilter = &status
	}

	goals, err := h.svc.ListGoals(ownerID, statusFilter)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	goalID, ok := parseIDParam(ctx, "goalID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid goal id")
	}

	goal, err := h.svc.GetGoal(ownerID, goalID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, goal)
}

func (h *GoalHandler) UpdateGoal(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	goalID, ok := parseIDParam(ctx, "goalID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid goal id")
	}

	var requestBody dto.GoalUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := helper.ValidateStruct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid status")
	}

	goal, err := h.svc.UpdateGoal(ownerID, goalID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	goalID, ok := parseIDParam(ctx, "goalID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid goal id")
	}

	if err := h.svc.DeleteGoal(ownerID, goalID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Goal deleted")
}

func (h *GoalHandler) CreateStep(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	goalID, ok := parseIDParam(ctx, "goalID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid goal id")
	}

	var requestBody dto.StepCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := helper.ValidateStruct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "title is required")
	}

	step, err := h.svc.CreateStep(ownerID, goalID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, step)
}

func (h *GoalHandler) UpdateStep(ctx *fiber.Ctx) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	goalID, ok := parseIDParam(ctx, "goalID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid goal id")
	}
	stepID, ok := parseIDParam(ctx, "stepID")
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid step id")
	}

	var requestBody dto.StepUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	step, err := h.svc.UpdateStep(ownerID, goalID, stepID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, step)
}
