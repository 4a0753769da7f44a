// Package validate checks request shapes at the HTTP boundary, before any
// service call. Failures are reported as Errs, one entry per field.
package validate

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/models"
)

// NUMERIC(15,2)
const (
	AmountScale     = 2
	AmountIntDigits = 13
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the `validate` tags of s. A nil return means s is valid.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(Errs, 0, len(ves))
	for _, fe := range ves {
		out = append(out, ErrField{Field: fe.Field(), Msg: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid":
		return "must be a valid UUID"
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return "must be > " + fe.Param()
	case "min":
		return "must be >= " + fe.Param()
	case "max":
		return "must be <= " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// Helpers

// Number holds a raw JSON number literal. Quoted numbers and other JSON
// kinds are rejected while decoding; null leaves it empty.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
		return errors.New("amount must be a JSON number")
	}
	*n = Number(b)
	return nil
}

// ParseAmount turns n into a positive decimal a NUMERIC(15,2) column holds
// exactly. Size checks use the exponent and coefficient length only, so a
// literal like 1e200000000 is refused without being expanded.
func ParseAmount(field string, n Number) (decimal.Decimal, *ErrField) {
	if n == "" {
		return decimal.Zero, &ErrField{Field: field, Msg: "required"}
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, &ErrField{Field: field, Msg: "must be a number"}
	}
	if d.Sign() <= 0 {
		return decimal.Zero, &ErrField{Field: field, Msg: "must be positive"}
	}

	digits, exp := int64(d.NumDigits()), int64(d.Exponent())
	if digits+exp > AmountIntDigits {
		return decimal.Zero, &ErrField{Field: field, Msg: "at most " + strconv.Itoa(AmountIntDigits) + " integer digits"}
	}
	if exp < -AmountScale {
		// the extra fractional digits must all be trailing zeros
		if -exp-AmountScale > digits || !d.Equal(d.Truncate(AmountScale)) {
			return decimal.Zero, &ErrField{Field: field, Msg: "at most " + strconv.Itoa(AmountScale) + " decimal places"}
		}
	}
	return d, nil
}

func UUID(field, value string) *ErrField {
	if err := v.Var(value, "required,uuid"); err != nil {
		return &ErrField{Field: field, Msg: "must be a valid UUID"}
	}
	return nil
}

// List is the parsed query of a transaction listing.
type List struct {
	Type  *models.TransactionType
	Page  int
	Limit int
}

type listQuery struct {
	Type  string `json:"type" validate:"omitempty,oneof=CREDIT DEBIT"`
	Page  int    `json:"page" validate:"min=1"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

// ListQuery parses ?type=&page=&limit=. Absent values take the defaults.
func ListQuery(q url.Values) (List, error) {
	lq := listQuery{Type: q.Get("type"), Page: models.DefaultPage, Limit: models.DefaultLimit}

	var errs Errs
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &lq.Page}, {"limit", &lq.Limit}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, ErrField{Field: p.name, Msg: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		return List{}, errs
	}
	if err := Struct(lq); err != nil {
		return List{}, err
	}

	out := List{Page: lq.Page, Limit: lq.Limit}
	if lq.Type != "" {
		t := models.TransactionType(lq.Type)
		out.Type = &t
	}
	return out, nil
}
