// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filter normalizes and validates form input before it reaches the
// stores. Each filter trims its fields, fills derived values, and reports
// per-field messages keyed by the form field name.
package filter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"pressroom/internal/models"
	"pressroom/internal/slug"
)

// Messages maps a form field name to its validation messages.
type Messages map[string][]string

// Add appends a message for a field.
func (m Messages) Add(field, msg string) {
	m[field] = append(m[field], msg)
}

// CategoryInput is the raw category form payload.
type CategoryInput struct {
	Name        string `form:"name" validate:"required,max=255"`
	Slug        string `form:"slug" validate:"required,max=255,slug"`
	Type        string `form:"type" validate:"required,oneof=post page"`
	Description string `form:"description" validate:"max=5000"`
}

// CategoryValues is the filtered, valid category payload.
type CategoryValues struct {
	Name        string
	Slug        string
	Type        models.CategoryType
	Description string
}

// CategoryFilter validates category input.
type CategoryFilter struct {
	validate *validator.Validate
}

// NewCategoryFilter builds a CategoryFilter with the slug rule registered.
func NewCategoryFilter() *CategoryFilter {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	return &CategoryFilter{validate: v}
}

// Filter trims the input, derives a slug from the name when none was given,
// and validates the result. Messages is nil when the input is valid.
func (f *CategoryFilter) Filter(in CategoryInput) (CategoryValues, Messages) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Description = strings.TrimSpace(in.Description)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	if err := f.validate.Struct(in); err != nil {
		return CategoryValues{}, messagesFrom(err)
	}

	return CategoryValues{
		Name:        in.Name,
		Slug:        in.Slug,
		Type:        models.CategoryType(in.Type),
		Description: in.Description,
	}, nil
}

// messagesFrom converts validator errors into per-field messages.
func messagesFrom(err error) Messages {
	msgs := Messages{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs.Add("_form", err.Error())
		return msgs
	}
	for _, fe := range verrs {
		msgs.Add(fe.Field(), message(fe))
	}
	return msgs
}

// message renders a human-readable message for one failed rule.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Value is required and can't be empty."
	case "max":
		return fmt.Sprintf("Value is too long (max %s characters).", fe.Param())
	case "oneof":
		return fmt.Sprintf("Value must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "slug":
		return "Use lowercase letters, digits and single hyphens only."
	default:
		return fmt.Sprintf("Value failed the %q rule.", fe.Tag())
	}
}
