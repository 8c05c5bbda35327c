// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned before any request is sent when a payload
// fails local checks.
type ValidationError struct {
	// Fields are "<json path>: <rule>" entries, one per failed check
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Fields, ", "))
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func webhookStructLevel(sl validator.StructLevel) {
	w := sl.Current().Interface().(Webhook)
	if w.JobSpec == nil && w.HTTPURLSpec == nil {
		sl.ReportError(w.JobSpec, "job_spec|http_url_spec", "Action", "required_action", "")
	} else if w.JobSpec != nil && w.HTTPURLSpec != nil {
		sl.ReportError(w.JobSpec, "job_spec|http_url_spec", "Action", "single_action", "")
	}
}

func updateWebhookStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(UpdateWebhookRequest)
	if r.JobSpec != nil && r.HTTPURLSpec != nil {
		sl.ReportError(r.JobSpec, "job_spec|http_url_spec", "Action", "single_action", "")
	}
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
		if err := validate.RegisterValidation("event", func(fl validator.FieldLevel) bool {
			return EventKind(fl.Field().String()).Valid()
		}); err != nil {
			panic(err)
		}
		validate.RegisterStructValidation(webhookStructLevel, Webhook{})
		validate.RegisterStructValidation(updateWebhookStructLevel, UpdateWebhookRequest{})
	})
	return validate
}

// Validate runs struct tag and struct level checks on obj, which must be a
// struct or pointer to struct.
func Validate(obj interface{}) error {
	err := getValidator().Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		ve.Fields = append(ve.Fields, fmt.Sprintf("%s: %s", ns, fe.Tag()))
	}
	return ve
}
