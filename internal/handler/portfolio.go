package handler

import (
	"net/http"

	"github.com/templui/folio/internal/ctxkeys"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/service"
	"github.com/templui/folio/internal/ui"
)

type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	generatorService *service.GeneratorService
}

func NewPortfolioHandler(portfolioService *service.PortfolioService, generatorService *service.GeneratorService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		generatorService: generatorService,
	}
}

func (h *PortfolioHandler) Config(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.Config(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "", portfolio)
}

func (h *PortfolioHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch service.PortfolioPatch
	err := decodeJSON(w, r, &patch)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	portfolio, err := h.portfolioService.UpdateConfig(r.Context(), ctxkeys.UserID(r.Context()), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "configuration updated", portfolio)
}

func (h *PortfolioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	result, err := h.generatorService.Generate(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "site generated", result)
}

// Preview returns the render input as JSON, or the rendered page with
// ?format=html.
func (h *PortfolioHandler) Preview(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	if r.URL.Query().Get("format") == "html" {
		page, err := h.generatorService.RenderPreview(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ui.RenderPage(w, r, page)
		return
	}

	preview, err := h.generatorService.Preview(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "", preview)
}

func (h *PortfolioHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.portfolioService.Templates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if templates == nil {
		templates = []*model.Template{}
	}
	ok(w, "", templates)
}
