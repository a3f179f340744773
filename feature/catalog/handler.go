package catalog

import (
	"errors"

	"asset-cache/core/assets"
	"asset-cache/core/jobs"
	"asset-cache/core/logger"
	"asset-cache/core/reconcile"
	"asset-cache/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	a := app.Group("/assets")
	a.Get("/", h.HandleListKinds)
	a.Get("/:kind", h.HandleListEntries)
	a.Get("/:kind/entry", h.HandleGetEntry)
	a.Post("/:kind/load", h.HandleLoad)
	a.Post("/:kind/rename", h.HandleRename)
	a.Delete("/:kind", h.HandleUnload)

	db := app.Group("/database")
	db.Get("/", h.HandleListProtocols)
	db.Get("/uid/:uid", h.HandleGetMetadata)
	db.Get("/:protocol", h.HandleListRows)
	db.Post("/:protocol/save", h.HandleSaveDatabase)

	app.Get("/reconcile/:protocol", h.HandleReconcile)
	app.Get("/jobs/stats", h.HandleStats)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, assets.ErrUnknownKind), errors.Is(err, ErrAssetNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, assets.ErrNoDatabaseStore):
		status = fiber.StatusServiceUnavailable
	}
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Catalog request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// HandleListKinds returns every kind with its entry count.
// @Summary List Kinds
// @Description Lists every registered asset kind with the number of cached entries.
// @Tags assets
// @Produce json
// @Success 200 {array} catalog.KindSummary "Kinds"
// @Router /assets [get]
func (h *Handler) HandleListKinds(c *fiber.Ctx) error {
	return c.JSON(h.service.Kinds())
}

// HandleListEntries returns the entries of a kind, optionally under ?group=.
// @Summary List Entries
// @Description Lists the cached entries of a kind, sorted by key. The sentinel entry is not included.
// @Tags assets
// @Produce json
// @Param kind path string true "Asset kind (e.g. 'image')"
// @Param group query string false "Key prefix (e.g. 'app:/data/textures')"
// @Success 200 {array} assets.Entry "Entries"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /assets/{kind} [get]
func (h *Handler) HandleListEntries(c *fiber.Ctx) error {
	entries, err := h.service.Entries(c.Params("kind"), c.Query("group"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

// HandleGetEntry returns the entry of ?key=.
// @Summary Get Entry
// @Description Returns the cached entry of a key without loading it.
// @Tags assets
// @Produce json
// @Param kind path string true "Asset kind"
// @Param key query string true "Asset key (e.g. 'app:/data/readme.txt')"
// @Success 200 {object} assets.Entry "Entry"
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 404 {object} map[string]string "Unknown kind or entry"
// @Router /assets/{kind}/entry [get]
func (h *Handler) HandleGetEntry(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return badRequest(c, "key is required")
	}
	entry, err := h.service.Entry(c.Params("kind"), key)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entry)
}

// HandleLoad requests ?key=. ?reload=true restarts the load and ?wait=true blocks until it settles.
// @Summary Load Asset
// @Description Requests the load of a key. Returns 202 while the load is pending and 200 once it is ready.
// @Tags assets
// @Produce json
// @Param kind path string true "Asset kind"
// @Param key query string true "Asset key"
// @Param reload query boolean false "Restart the load even if cached"
// @Param wait query boolean false "Block until the load settles"
// @Success 200 {object} assets.Entry "Ready entry"
// @Success 202 {object} assets.Entry "Pending entry"
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 404 {object} map[string]string "Unknown kind or unresolvable key"
// @Failure 422 {object} map[string]interface{} "Load failed"
// @Router /assets/{kind}/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return badRequest(c, "key is required")
	}
	reload := utils.ToBool(c.Query("reload"))
	wait := utils.ToBool(c.Query("wait"))

	entry, err := h.service.Load(c.UserContext(), c.Params("kind"), key, reload, wait)
	if err != nil {
		if entry.Valid {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
				"entry": entry,
			})
		}
		return h.fail(c, err)
	}

	status := fiber.StatusOK
	if !entry.Ready {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(entry)
}

type statsResponse struct {
	jobs.Stats
	Idle int `json:"idle"`
}

type renameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// HandleRename moves an entry and its database rows.
// @Summary Rename Asset
// @Description Moves a cached entry and its database rows to a new key.
// @Tags assets
// @Accept json
// @Produce json
// @Param kind path string true "Asset kind"
// @Param request body catalog.renameRequest true "Old and new key"
// @Success 200 {object} map[string]string "Renamed"
// @Failure 400 {object} map[string]string "Invalid body"
// @Failure 404 {object} map[string]string "Unknown kind or entry"
// @Router /assets/{kind}/rename [post]
func (h *Handler) HandleRename(c *fiber.Ctx) error {
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.From == "" || req.To == "" {
		return badRequest(c, "from and to are required")
	}
	if err := h.service.Rename(c.Params("kind"), req.From, req.To); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from": req.From,
		"to":   req.To,
	})
}

// HandleUnload drops ?key= or every entry under ?group=.
// @Summary Unload Assets
// @Description Unloads one key, or every entry under a group together with its database rows.
// @Tags assets
// @Produce json
// @Param kind path string true "Asset kind"
// @Param key query string false "Asset key"
// @Param group query string false "Key prefix"
// @Success 200 {object} map[string]int "Unloaded count"
// @Failure 400 {object} map[string]string "Missing key and group"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /assets/{kind} [delete]
func (h *Handler) HandleUnload(c *fiber.Ctx) error {
	key, group := c.Query("key"), c.Query("group")
	if key == "" && group == "" {
		return badRequest(c, "key or group is required")
	}
	n, err := h.service.Unload(c.Params("kind"), key, group)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"unloaded": n,
	})
}

// HandleListProtocols lists the protocols that own a database.
// @Summary List Databases
// @Description Lists the protocols that own an asset database.
// @Tags database
// @Produce json
// @Success 200 {array} string "Protocols"
// @Router /database [get]
func (h *Handler) HandleListProtocols(c *fiber.Ctx) error {
	return c.JSON(h.service.Protocols())
}

// HandleListRows returns the database rows of a protocol.
// @Summary List Rows
// @Description Returns the rows of a protocol database, sorted by location.
// @Tags database
// @Produce json
// @Param protocol path string true "Protocol (e.g. 'app')"
// @Success 200 {array} assets.Row "Rows"
// @Router /database/{protocol} [get]
func (h *Handler) HandleListRows(c *fiber.Ctx) error {
	rows := h.service.DatabaseRows(c.Params("protocol"))
	if rows == nil {
		rows = []assets.Row{}
	}
	return c.JSON(rows)
}

// HandleGetMetadata looks up a row by UID.
// @Summary Get Row By UID
// @Description Finds the database row of a UID in every database.
// @Tags database
// @Produce json
// @Param uid path string true "Asset UID"
// @Success 200 {object} assets.Row "Row"
// @Failure 400 {object} map[string]string "Invalid uid"
// @Failure 404 {object} map[string]string "Unknown uid"
// @Router /database/uid/{uid} [get]
func (h *Handler) HandleGetMetadata(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return badRequest(c, "invalid uid")
	}
	row, ok := h.service.Metadata(uid)
	if !ok {
		return h.fail(c, ErrAssetNotFound)
	}
	return c.JSON(row)
}

// HandleSaveDatabase persists the database of a protocol.
// @Summary Save Database
// @Description Persists the database of a protocol to the configured store.
// @Tags database
// @Produce json
// @Param protocol path string true "Protocol"
// @Success 200 {object} map[string]string "Saved"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "No store configured"
// @Router /database/{protocol}/save [post]
func (h *Handler) HandleSaveDatabase(c *fiber.Ctx) error {
	protocol := c.Params("protocol")
	if err := h.service.SaveDatabase(c.UserContext(), protocol); err != nil {
		return h.fail(c, err)
	}
	logger.WithRayID(h.service.logger, c).Info("Database saved", zap.String("protocol", protocol))
	return c.JSON(fiber.Map{
		"saved": protocol,
	})
}

// HandleReconcile reports a protocol. ?purge=true and ?track=true apply the plan.
// @Summary Reconcile Database
// @Description Compares a protocol database with the files under its mount. Optionally purges stale rows and tracks new files.
// @Tags reconcile
// @Produce json
// @Param protocol path string true "Protocol"
// @Param purge query boolean false "Remove rows whose file is missing"
// @Param track query boolean false "Add rows for untracked files"
// @Success 200 {object} reconcile.ReconcilePlan "Reconcile Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/{protocol} [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	purge := utils.ToBool(c.Query("purge"))
	track := utils.ToBool(c.Query("track"))
	opts := reconcile.ReconcileOptions{
		DoPurge:   purge,
		DoTrack:   track,
		Confirmed: purge || track,
	}
	plan, err := h.service.Reconcile(c.UserContext(), c.Params("protocol"), opts)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

// HandleStats returns the job pool state.
// @Summary Job Pool Stats
// @Description Returns the number of workers, queued and running jobs.
// @Tags jobs
// @Produce json
// @Success 200 {object} catalog.statsResponse "Stats"
// @Router /jobs/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats := h.service.Stats()
	return c.JSON(statsResponse{Stats: stats, Idle: stats.Workers - stats.Running})
}
