package integrity

import (
	"errors"

	"asset-cache/core/logger"
	"asset-cache/core/utils"
	"asset-cache/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/mounts", h.HandleMountCheck)
	group.Get("/store", h.HandleStoreCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

func status(err error) fiber.Map {
	if errors.Is(err, ErrNotConfigured) {
		return fiber.Map{"status": "skipped"}
	}
	return fiber.Map{"status": "error", "error": err.Error()}
}

func warnStore(l *zap.Logger, report *checks.StoreReport) {
	if len(report.Errors) > 0 {
		l.Warn("Store check found unreadable databases", zap.Strings("errors", report.Errors))
	}
}

func warnSchema(l *zap.Logger, report *checks.SchemaReport) {
	if len(report.MissingColumns) > 0 {
		l.Warn("Asset table is missing columns", zap.String("table", report.Table), zap.Strings("missing", report.MissingColumns))
	}
}

// HandleIntegrityCheck runs every check and combines the results.
// @Summary Run All Integrity Checks
// @Description Performs every integrity check (Mounts, Store, Bucket, Schema). Checks whose backend is not configured report "skipped".
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if missing, err := h.service.CheckMounts(); err != nil {
		report["mounts"] = status(err)
	} else {
		report["mounts"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if storeReport, err := h.service.CheckStore(ctx); err != nil {
		report["store"] = status(err)
	} else {
		warnStore(l, storeReport)
		report["store"] = storeReport
	}

	if err := h.service.CheckBucket(ctx); err != nil {
		report["bucket"] = status(err)
	} else {
		report["bucket"] = fiber.Map{"status": "ok"}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = status(err)
	} else {
		warnSchema(l, schema)
		report["schema"] = schema
	}

	return c.JSON(report)
}

// HandleMountCheck checks and optionally creates mount directories.
// @Summary Check Mounts
// @Description Checks that every mounted protocol points to an existing directory. Optionally creates the missing ones.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create missing mount directories"
// @Success 200 {object} map[string]interface{} "Mount Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/mounts [get]
func (h *Handler) HandleMountCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	missing, err := h.service.CheckMounts()
	if err != nil {
		l.Error("Mount check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing mount directories detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to create missing mount directories")
			if err := h.service.FixMounts(missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix mounts",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleStoreCheck reads every protocol from the database store.
// @Summary Check Database Store
// @Description Reads the persisted database of every mounted protocol and counts its rows.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.StoreReport "Store Report"
// @Failure 503 {object} map[string]string "No store configured"
// @Router /integrity/store [get]
func (h *Handler) HandleStoreCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStore(c.Context())
	if err != nil {
		l.Error("Store check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	warnStore(l, report)
	return c.JSON(report)
}

// HandleBucketCheck verifies the object storage bucket.
// @Summary Check Bucket
// @Description Verifies that the object storage bucket exists.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]string "Bucket exists"
// @Failure 500 {object} map[string]string "Missing bucket or storage error"
// @Failure 503 {object} map[string]string "Bucket backend not configured"
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.CheckBucket(c.Context()); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleSchemaCheck inspects the asset table.
// @Summary Check Schema
// @Description Checks that the asset_database table has the columns the sql backend writes.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Sql backend not configured"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	warnSchema(l, report)
	return c.JSON(report)
}
