package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/octavianissuemonitoring/parser-law-sub001/dao"
	"github.com/octavianissuemonitoring/parser-law-sub001/httpresponse"
	"github.com/octavianissuemonitoring/parser-law-sub001/service"
)

type ActAPI struct {
	Router        fiber.Router
	ActDAO        *dao.ActDAO
	ArticleDAO    *dao.ArticleDAO
	AnnexDAO      *dao.AnnexDAO
	ImportService *service.ImportService
}

func (api *ActAPI) Register() {
	api.Router.Get(
		"/acts", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			acts, err := api.ActDAO.FindAll(ctx)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			return httpresponse.ApplySuccessToResponse(c, acts)
		},
	)

	api.Router.Get(
		"/acts/:id", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			act, err := api.ActDAO.FindById(ctx, c.Params("id"))
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			if act == nil {
				return c.SendStatus(fiber.StatusNotFound)
			}

			articles, err := api.ArticleDAO.FindByAct(ctx, act.InternalId)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			annexes, err := api.AnnexDAO.FindByAct(ctx, act.InternalId)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, fiber.Map{
				"act":      act,
				"articles": articles,
				"annexes":  annexes,
			})
		},
	)

	// Change history of an act across re-imports
	api.Router.Get(
		"/acts/:id/changes", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			records, err := api.ImportService.ChangeHistory(ctx, c.Params("id"))
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			return httpresponse.ApplySuccessToResponse(c, records)
		},
	)

	// Queue contract for the downstream labeling stage: everything still
	// pending plus everything whose text changed since the last pass
	api.Router.Get(
		"/labeling/queue", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			articles, err := api.ArticleDAO.FindLabelingQueue(ctx)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			return httpresponse.ApplySuccessToResponse(c, articles)
		},
	)
}
