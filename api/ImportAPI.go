package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/octavianissuemonitoring/parser-law-sub001/httpresponse"
	"github.com/octavianissuemonitoring/parser-law-sub001/service"
)

type ImportAPI struct {
	Router        fiber.Router
	IngestService *service.IngestService
}

type importActRequest struct {
	SourceURL string `json:"sourceUrl"`
	HTML      string `json:"html"`
}

func (api *ImportAPI) Register() {
	// Admin endpoint to fetch, parse and import a batch of acts by URL
	api.Router.Post(
		"/import/acts", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			urls := c.Query("urls")
			if urls == "" {
				return httpresponse.ApplyBadRequestToResponse(c, "urls parameter is required (comma-separated source URLs)")
			}

			summary := api.IngestService.IngestURLs(ctx, strings.Split(urls, ","))
			return httpresponse.ApplySuccessToResponse(c, summary)
		},
	)

	// Push-style import: the caller supplies the HTML it already fetched
	api.Router.Post(
		"/import/act", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			var req importActRequest
			if err := c.BodyParser(&req); err != nil {
				return httpresponse.ApplyBadRequestToResponse(c, "invalid request body")
			}
			if req.SourceURL == "" || req.HTML == "" {
				return httpresponse.ApplyBadRequestToResponse(c, "sourceUrl and html are required")
			}

			outcome, parseResult, err := api.IngestService.IngestDocument(ctx, req.SourceURL, req.HTML)
			if err != nil {
				if errors.Is(err, service.ErrConcurrentMerge) {
					return httpresponse.ApplyConflictToResponse(c, "an import for this act is already running, retry later")
				}
				return httpresponse.ApplyErrorToResponse(c, "Import failed", err)
			}

			return httpresponse.ApplySuccessToResponse(c, fiber.Map{
				"status":     outcome.Status,
				"act":        outcome.Act,
				"change":     outcome.Change,
				"confidence": parseResult.Confidence,
				"warnings":   parseResult.Warnings,
			})
		},
	)
}
