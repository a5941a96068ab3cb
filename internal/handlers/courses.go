// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnpress/internal/models"
	"learnpress/internal/tree"
)

// ListCourses handles GET /courses?page&limit&q&published.
func (a *API) ListCourses(w http.ResponseWriter, r *http.Request) {
	q, errs := parseCourseQuery(r)
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	page, err := a.svc.ListCourses(r.Context(), q)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseCourseQuery(r *http.Request) (models.CourseQuery, fieldErrors) {
	v := r.URL.Query()
	q := models.CourseQuery{
		Q:         strings.TrimSpace(v.Get("q")),
		Published: models.ParsePublishFilter(v.Get("published")),
	}
	var errs fieldErrors
	positive := func(name string) int {
		raw := v.Get(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			if errs == nil {
				errs = fieldErrors{}
			}
			errs[name] = "must be a positive integer"
		}
		return n
	}
	q.Page = positive("page")
	q.Limit = positive("limit")
	return q, errs
}

// GetCourseBySlug handles GET /courses/{slug}.
func (a *API) GetCourseBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := a.svc.GetCourseBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetCourseByID handles GET /courses/id/{id}.
func (a *API) GetCourseByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityCourse)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	c, err := a.svc.GetCourseByID(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCourse handles POST /courses.
func (a *API) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
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
	c, err := a.svc.CreateCourse(r.Context(), req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCourse handles PATCH /courses/{id}.
func (a *API) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityCourse)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if errs := check(req); errs != nil {
		writeValidation(w, errs)
		return
	}
	c, err := a.svc.UpdateCourse(r.Context(), id, req.patch())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCourse handles DELETE /courses/{id}.
func (a *API) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", tree.EntityCourse)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.svc.DeleteCourse(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeMessage(w, "Course deleted successfully")
}

func (req courseRequest) patch() models.CoursePatch {
	p := models.CoursePatch{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		IsPublished:  req.IsPublished,
		AuthorName:   req.AuthorName,
		AuthorAvatar: req.AuthorAvatar,
		Rating:       req.Rating,
		RatingCount:  req.RatingCount,
	}
	if req.Level != nil {
		level := models.CourseLevel(*req.Level)
		p.Level = &level
	}
	return p
}
