// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"learnpress/internal/models"
	"learnpress/internal/tree"
)

// CreateSection handles POST /courses/{courseId}/sections.
func (a *API) CreateSection(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId", tree.EntityCourse)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req sectionRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	errs := check(req)
	errs = requireFields(errs, map[string]bool{"title": req.Title != nil})
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	sec, err := a.svc.CreateSection(r.Context(), courseID, *req.Title, req.Order)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sec)
}

// UpdateSection handles PATCH /sections/{id}.
func (a *API) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntitySection)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req sectionRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if errs := check(req); errs != nil {
		writeValidation(w, errs)
		return
	}
	sec, err := a.svc.UpdateSection(r.Context(), id, models.SectionPatch{Title: req.Title, Order: req.Order})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// DeleteSection handles DELETE /sections/{id}.
func (a *API) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntitySection)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.svc.DeleteSection(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeMessage(w, "Section deleted successfully")
}

// ReorderSections handles PUT and PATCH /sections/reorder.
func (a *API) ReorderSections(w http.ResponseWriter, r *http.Request) {
	a.reorder(w, r, a.svc.ReorderSections, "Sections reordered")
}
