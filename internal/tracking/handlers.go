package tracking

import (
	"errors"

	"backend-pacetrack/internal/tracker"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/sessions", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.DeviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id required")
		}
		return c.Status(fiber.StatusCreated).JSON(svc.CreateSession(req.DeviceID))
	})

	r.Post("/sessions/:id/start", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := svc.StartSession(c.Params("id"))
		return snapshotResponse(c, snap, err)
	})

	r.Post("/sessions/:id/pause", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := svc.PauseSession(c.Params("id"))
		return snapshotResponse(c, snap, err)
	})

	r.Post("/sessions/:id/reset", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := svc.ResetSession(c.Params("id"))
		return snapshotResponse(c, snap, err)
	})

	r.Post("/sessions/:id/fixes", authMiddleware, func(c *fiber.Ctx) error {
		var fix tracker.Fix
		if err := c.BodyParser(&fix); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.PushFix(c.Params("id"), fix); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/sessions/:id/sensor-errors", authMiddleware, func(c *fiber.Ctx) error {
		var req SensorErrorRequest
		if err := c.BodyParser(&req); err != nil || req.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code required")
		}
		if err := svc.PushSensorError(c.Params("id"), req.Code); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/sessions/:id/snapshot", func(c *fiber.Ctx) error {
		snap, err := svc.SessionSnapshot(c.Params("id"))
		return snapshotResponse(c, snap, err)
	})

	r.Post("/sessions/:id/end", authMiddleware, func(c *fiber.Ctx) error {
		summary, err := svc.EndSession(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(summary)
	})
}

func snapshotResponse(c *fiber.Ctx, snap tracker.Snapshot, err error) error {
	if err != nil {
		return statusError(err)
	}
	return c.JSON(snap)
}

func statusError(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
