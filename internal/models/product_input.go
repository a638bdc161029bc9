package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Inbound field names.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldStockQuantity = "stock_quantity"
	FieldCategory      = "category"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RawFields is an inbound JSON object keyed by field name. A key that is
// present with a null value is distinct from an absent key.
type RawFields map[string]json.RawMessage

// ParseRawFields decodes a request body that must hold a JSON object.
func ParseRawFields(body []byte) (RawFields, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("request body must be a JSON object")
	}
	var fields RawFields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return fields, nil
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name          *string  `json:"name" validate:"required,min=1,max=100"`
	Description   *string  `json:"description" validate:"omitnil,max=500"`
	Price         *float64 `json:"price" validate:"omitnil,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitnil,gte=0"`
	Category      *string  `json:"category" validate:"omitnil,max=100"`
}

// ValidationError lists the rejected fields with a message per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// DecodeProductInput validates the fields of a new product: name and price
// are required, the rest are optional.
func DecodeProductInput(fields RawFields) (*ProductInput, error) {
	in, _, verr := decodeFields(fields)
	if in.Price == nil {
		verr.add(FieldPrice, "is required")
	}
	validateInput(in, verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// NewProduct builds an unsaved product from validated input. Missing stock
// defaults to zero.
func (in *ProductInput) NewProduct() *Product {
	p := &Product{
		Name:        *in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Category:    in.Category,
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	return p
}

// ApplyFields overwrites every field of p whose key is present in fields.
// An explicit null clears description and category and resets the stock to
// zero; it is rejected for name and price. p is left untouched on error.
func ApplyFields(p *Product, fields RawFields) error {
	in, present, verr := decodeFields(fields)

	candidate := *p
	if present[FieldName] {
		if in.Name == nil {
			verr.add(FieldName, "must not be null")
		} else {
			candidate.Name = *in.Name
		}
	}
	if present[FieldDescription] {
		candidate.Description = in.Description
	}
	if present[FieldPrice] {
		if in.Price == nil {
			verr.add(FieldPrice, "must not be null")
		} else {
			candidate.Price = *in.Price
		}
	}
	if present[FieldStockQuantity] {
		candidate.StockQuantity = 0
		if in.StockQuantity != nil {
			candidate.StockQuantity = *in.StockQuantity
		}
	}
	if present[FieldCategory] {
		candidate.Category = in.Category
	}

	validateInput(&ProductInput{
		Name:          &candidate.Name,
		Description:   candidate.Description,
		Price:         &candidate.Price,
		StockQuantity: &candidate.StockQuantity,
		Category:      candidate.Category,
	}, verr)
	if err := verr.orNil(); err != nil {
		return err
	}

	*p = candidate
	return nil
}

func decodeFields(fields RawFields) (*ProductInput, map[string]bool, *ValidationError) {
	in := &ProductInput{}
	present := make(map[string]bool)
	verr := &ValidationError{}

	targets := []struct {
		key      string
		dst      interface{}
		typeName string
	}{
		{FieldName, &in.Name, "a string"},
		{FieldDescription, &in.Description, "a string"},
		{FieldPrice, &in.Price, "a number"},
		{FieldStockQuantity, &in.StockQuantity, "an integer"},
		{FieldCategory, &in.Category, "a string"},
	}
	for _, target := range targets {
		raw, ok := fields[target.key]
		if !ok {
			continue
		}
		present[target.key] = true
		if err := json.Unmarshal(raw, target.dst); err != nil {
			verr.add(target.key, "must be "+target.typeName)
		}
	}
	return in, present, verr
}

func validateInput(in *ProductInput, verr *ValidationError) {
	err := validate.Struct(in)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("body", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), describe(fe))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" {
			return "is required"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}
