package handler

import (
	"context"
	"net/http"

	"vault-purge/internal/model"
)

type trashLister interface {
	ListDeleted(ctx context.Context) ([]model.Cipher, error)
}

type TrashHandler struct {
	store trashLister
}

func NewTrashHandler(store trashLister) *TrashHandler {
	return &TrashHandler{store: store}
}

// List returns the soft-deleted ciphers currently in the trash, oldest first.
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	ciphers, err := h.store.ListDeleted(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, ciphers, &model.Meta{Total: len(ciphers)})
}
