// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"learnpress/internal/models"
	"learnpress/internal/ordering"
	"learnpress/internal/tree"
)

// CreateLesson handles POST /sections/{sectionId}/lessons.
func (a *API) CreateLesson(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionId", tree.EntitySection)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req lessonRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	errs := check(req)
	errs = requireFields(errs, map[string]bool{"title": req.Title != nil, "slug": req.Slug != nil})
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	l, err := a.svc.CreateLesson(r.Context(), sectionID, req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// GetLesson handles GET /lessons/{id}. ?format=html adds the rendered
// fragment to every block.
func (a *API) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityLesson)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	opts := tree.ReadOptions{HTML: r.URL.Query().Get("format") == "html"}
	detail, err := a.svc.GetLesson(r.Context(), id, opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateLesson handles PATCH /lessons/{id}.
func (a *API) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityLesson)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req lessonRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if errs := check(req); errs != nil {
		writeValidation(w, errs)
		return
	}
	l, err := a.svc.UpdateLesson(r.Context(), id, req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// DeleteLesson handles DELETE /lessons/{id}.
func (a *API) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityLesson)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.svc.DeleteLesson(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeMessage(w, "Lesson deleted successfully")
}

// ReorderLessons handles PUT and PATCH /lessons/reorder.
func (a *API) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	a.reorder(w, r, a.svc.ReorderLessons, "Lessons reordered")
}

func (req lessonRequest) patch() models.LessonPatch {
	p := models.LessonPatch{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
		Order:    req.Order,
		IsFree:   req.IsFree,
	}
	if req.Type != nil {
		t := models.LessonType(*req.Type)
		p.Type = &t
	}
	return p
}

// reorder decodes either reorder body shape and applies it with apply.
func (a *API) reorder(w http.ResponseWriter, r *http.Request, apply func(context.Context, []ordering.Item) error, done string) {
	req, err := decodeReorder(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if errs := check(req); errs != nil {
		writeValidation(w, errs)
		return
	}
	if err := apply(r.Context(), req.Items); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeMessage(w, done)
}
