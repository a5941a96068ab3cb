package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"learnpress/internal/ordering"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// validate is shared by every handler; validator caches struct metadata and
// is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors is the "errors" object of a validation failure body.
type fieldErrors map[string]string

// errBadBody marks a request body that could not be decoded.
var errBadBody = errors.New("invalid request body")

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errBadBody
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", errBadBody)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// check runs the struct tags and returns one message per failing field, or
// nil when v is valid.
func check(v any) fieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fieldErrors{"_": err.Error()}
	}
	out := make(fieldErrors, len(ve))
	for _, fe := range ve {
		out[fieldPath(fe)] = describe(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace:
// "reorderRequest.items[0].id" becomes "items[0].id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a URL"
	}
	return "is invalid"
}

// requireFields adds an "is required" entry for every field that is absent
// from a create request. It returns errs, allocating it when needed.
func requireFields(errs fieldErrors, present map[string]bool) fieldErrors {
	for name, ok := range present {
		if ok {
			continue
		}
		if errs == nil {
			errs = fieldErrors{}
		}
		errs[name] = "is required"
	}
	return errs
}

// --- Request bodies ---

// Patch bodies: every field is optional and only supplied fields change.
// Create handlers additionally require the fields listed in requireFields.

type courseRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Slug         *string  `json:"slug" validate:"omitempty,min=1,max=300"`
	Description  *string  `json:"description"`
	Price        *int     `json:"price" validate:"omitempty,min=0"`
	IsPublished  *bool    `json:"is_published"`
	AuthorName   *string  `json:"author_name" validate:"omitempty,max=200"`
	AuthorAvatar *string  `json:"author_avatar" validate:"omitempty,max=2048"`
	Rating       *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	RatingCount  *int     `json:"rating_count" validate:"omitempty,min=0"`
	Level        *string  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

type sectionRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=300"`
	Order *int    `json:"order" validate:"omitempty,min=0,max=2147483646"`
}

type lessonRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=300"`
	Slug     *string `json:"slug" validate:"omitempty,min=1,max=300"`
	Type     *string `json:"type" validate:"omitempty,oneof=text video quiz"`
	Content  *string `json:"content"`
	VideoURL *string `json:"video_url" validate:"omitempty,url,max=2048"`
	Duration *int    `json:"duration" validate:"omitempty,min=0"`
	Order    *int    `json:"order" validate:"omitempty,min=0,max=2147483646"`
	IsFree   *bool   `json:"is_free"`
}

type blockRequest struct {
	Type     *string         `json:"type" validate:"omitempty,min=1,max=40"`
	Content  *string         `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
	Order    *int            `json:"order" validate:"omitempty,min=0,max=2147483646"`
}

// reorderRequest is the {"items": [...]} form. A bare array is accepted too.
type reorderRequest struct {
	Items []ordering.Item `json:"items" validate:"required,max=1000,dive"`
}

// decodeReorder accepts either {"items": [...]} or a bare [...] body.
func decodeReorder(r *http.Request) (*reorderRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errBadBody
	}
	body = bytes.TrimSpace(body)
	req := &reorderRequest{}
	switch {
	case len(body) == 0:
		return nil, fmt.Errorf("%w: empty body", errBadBody)
	case body[0] == '[':
		err = json.Unmarshal(body, &req.Items)
	default:
		err = json.Unmarshal(body, req)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return req, nil
}
