package utils

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// MinPaymentAmount is the smallest amount a payment may carry.
var MinPaymentAmount = decimal.RequireFromString("0.01")

// PaymentRequest is the normalized body of a create-payment call.
type PaymentRequest struct {
	Amount      float64 `json:"amount" validate:"min_amount"`
	Currency    string  `json:"currency" validate:"required"`
	Description *string `json:"description,omitempty"`
	PayerID     string  `json:"payerId"`
	PayeeID     string  `json:"payeeId"`
}

// ValidationError is a classified validation failure. Exactly one is
// reported per call.
type ValidationError struct {
	Code   ErrorCode
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func newValidationError(code ErrorCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

type jsonType string

const (
	typeString  jsonType = "string"
	typeNumber  jsonType = "number"
	typeBoolean jsonType = "boolean"
	typeNull    jsonType = "null"
	typeArray   jsonType = "array"
	typeObject  jsonType = "object"
)

type fieldSchema struct {
	name     string
	typ      jsonType
	required bool
}

// paymentSchema lists the accepted properties in reporting order.
var paymentSchema = []fieldSchema{
	{name: "amount", typ: typeNumber, required: true},
	{name: "currency", typ: typeString, required: true},
	{name: "description", typ: typeString},
	{name: "payerId", typ: typeString, required: true},
	{name: "payeeId", typ: typeString, required: true},
}

// PaymentValidator turns raw request bodies into PaymentRequests.
// It is safe for concurrent use.
type PaymentValidator struct {
	validate *validator.Validate
}

func NewPaymentValidator() *PaymentValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("min_amount", func(fl validator.FieldLevel) bool {
		return decimal.NewFromFloat(fl.Field().Float()).GreaterThanOrEqual(MinPaymentAmount)
	})
	return &PaymentValidator{validate: v}
}

// Validate checks body against the payment schema. On failure the returned
// error is a *ValidationError describing the first violation found, in the
// order: unparseable or empty body, missing fields, wrong types, out of
// range values, anything else.
func (pv *PaymentValidator) Validate(body []byte) (*PaymentRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, newValidationError(CodeBadRequest, "body is empty")
	}

	var doc interface{}
	if err := jsonCodec.Unmarshal(body, &doc); err != nil {
		return nil, newValidationError(CodeInvalidJSON, "%s", err.Error())
	}
	if isEmptyValue(doc) {
		return nil, newValidationError(CodeBadRequest, "body is empty")
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, newValidationError(CodeInvalidRequest, "request body must be a JSON object, got %s", typeOf(doc))
	}

	if missing := missingFields(obj); len(missing) > 0 {
		if len(missing) == 1 {
			return nil, newValidationError(CodeMissingField, "missing required field: %s", missing[0])
		}
		return nil, newValidationError(CodeMissingField, "missing required fields: %s", strings.Join(missing, ", "))
	}

	for _, f := range paymentSchema {
		v, present := obj[f.name]
		if !present {
			continue
		}
		if actual := typeOf(v); actual != f.typ {
			return nil, newValidationError(CodeInvalidFieldType,
				"field '%s' must be of type %s, got %s", f.name, f.typ, actual)
		}
	}

	req := buildRequest(obj)
	if err := pv.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fieldValueError(verrs[0])
		}
		return nil, newValidationError(CodeInvalidRequest, "%s", err.Error())
	}

	if extra := unknownFields(obj); len(extra) > 0 {
		quoted := make([]string, len(extra))
		for i, name := range extra {
			quoted[i] = "'" + name + "'"
		}
		verb := "was"
		if len(extra) > 1 {
			verb = "were"
		}
		return nil, newValidationError(CodeInvalidRequest,
			"Additional properties are not allowed (%s %s unexpected)", strings.Join(quoted, ", "), verb)
	}

	return req, nil
}

func fieldValueError(fe validator.FieldError) *ValidationError {
	switch fe.Tag() {
	case "min_amount":
		return newValidationError(CodeInvalidFieldValue,
			"field '%s' must be greater than or equal to %s", fe.Field(), MinPaymentAmount.String())
	case "required":
		return newValidationError(CodeInvalidFieldValue, "field '%s' must not be empty", fe.Field())
	default:
		return newValidationError(CodeInvalidFieldValue,
			"field '%s' failed the '%s' rule", fe.Field(), fe.Tag())
	}
}

// buildRequest copies already type-checked values into the typed form.
func buildRequest(obj map[string]interface{}) *PaymentRequest {
	req := &PaymentRequest{
		Amount:   obj["amount"].(float64),
		Currency: obj["currency"].(string),
		PayerID:  obj["payerId"].(string),
		PayeeID:  obj["payeeId"].(string),
	}
	if d, ok := obj["description"].(string); ok {
		req.Description = &d
	}
	return req
}

func missingFields(obj map[string]interface{}) []string {
	var missing []string
	for _, f := range paymentSchema {
		if _, ok := obj[f.name]; f.required && !ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func unknownFields(obj map[string]interface{}) []string {
	var extra []string
	for name := range obj {
		if !isSchemaField(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra
}

func isSchemaField(name string) bool {
	for _, f := range paymentSchema {
		if f.name == name {
			return true
		}
	}
	return false
}

func typeOf(v interface{}) jsonType {
	switch v.(type) {
	case nil:
		return typeNull
	case string:
		return typeString
	case float64:
		return typeNumber
	case bool:
		return typeBoolean
	case []interface{}:
		return typeArray
	default:
		return typeObject
	}
}

// isEmptyValue reports whether a decoded document carries nothing:
// null, false, 0, "", [] or {}.
func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

// jsonTagName reports struct fields by their JSON name in validation errors.
func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
