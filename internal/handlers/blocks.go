// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"learnpress/internal/models"
	"learnpress/internal/tree"
)

// CreateBlock handles POST /lessons/{lessonId}/blocks.
func (a *API) CreateBlock(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonId", tree.EntityLesson)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req blockRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	errs := check(req)
	errs = requireFields(errs, map[string]bool{"type": req.Type != nil})
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	b, err := a.svc.CreateBlock(r.Context(), lessonID, req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// UpdateBlock handles PATCH /blocks/{id}.
func (a *API) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityBlock)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req blockRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if errs := check(req); errs != nil {
		writeValidation(w, errs)
		return
	}
	b, err := a.svc.UpdateBlock(r.Context(), id, req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// DeleteBlock handles DELETE /blocks/{id}.
func (a *API) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityBlock)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.svc.DeleteBlock(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeMessage(w, "Block deleted successfully")
}

// ReorderBlocks handles PUT and PATCH /blocks/reorder.
func (a *API) ReorderBlocks(w http.ResponseWriter, r *http.Request) {
	a.reorder(w, r, a.svc.ReorderBlocks, "Blocks reordered")
}

// patch converts the body. An explicit "metadata": null clears the
// metadata; an absent key leaves it alone.
func (req blockRequest) patch() models.BlockPatch {
	p := models.BlockPatch{Type: req.Type, Content: req.Content, Order: req.Order}
	if req.Metadata != nil {
		md := req.Metadata
		p.Metadata = &md
	}
	return p
}
