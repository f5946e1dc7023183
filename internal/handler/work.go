package handler

import (
	"net/http"

	"github.com/templui/folio/internal/ctxkeys"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/service"
)

type WorkHandler struct {
	workService *service.WorkService
}

func NewWorkHandler(workService *service.WorkService) *WorkHandler {
	return &WorkHandler{
		workService: workService,
	}
}

func (h *WorkHandler) List(w http.ResponseWriter, r *http.Request) {
	works, err := h.workService.List(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if works == nil {
		works = []*model.Work{}
	}
	ok(w, "", works)
}

func (h *WorkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.WorkInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	work, err := h.workService.Create(r.Context(), ctxkeys.UserID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created(w, "work created", work)
}

func (h *WorkHandler) Update(w http.ResponseWriter, r *http.Request) {
	workID, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "invalid work id")
		return
	}

	var input service.WorkInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	work, err := h.workService.Update(r.Context(), ctxkeys.UserID(r.Context()), workID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "work updated", work)
}

func (h *WorkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workID, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "invalid work id")
		return
	}

	err := h.workService.Delete(r.Context(), ctxkeys.UserID(r.Context()), workID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "work deleted", nil)
}

type reorderRequest struct {
	WorkIDs []int64 `json:"workIds"`
}

func (h *WorkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.workService.Reorder(r.Context(), ctxkeys.UserID(r.Context()), req.WorkIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "order updated", nil)
}
