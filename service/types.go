package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/trace"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidInstance     = "INVALID_INSTANCE"
	CodeTooManyItems        = "TOO_MANY_ITEMS"
	CodeInvalidFormat       = "INVALID_FORMAT"
	CodeRateLimited         = "RATE_LIMITED"
	CodeRenderFailed        = "RENDER_FAILED"
	CodeRendererUnavailable = "RENDERER_UNAVAILABLE"
	CodeInternal            = "INTERNAL"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	mustRegister(validate, "intlist", validateIntList)
}

// mustRegister panics when a rule cannot be registered, so a broken tag
// stops the process at startup.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("service: register %q validation: %v", tag, err))
	}
}

// validateIntList accepts whitespace-separated base-10 integers.
func validateIntList(fl validator.FieldLevel) bool {
	_, err := parseIntList(fl.Field().String())

	return err == nil
}

func parseIntList(s string) ([]int64, error) {
	fields := strings.Fields(s)
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", f)
		}
		out = append(out, v)
	}

	return out, nil
}

// Multiplier is the capacity field of the legacy request body. It accepts a
// JSON integer or a string holding one; absent means 1.
type Multiplier struct {
	Value int64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Multiplier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Multiplier{}
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("multiplier: %q is not an integer", s)
	}
	*m = Multiplier{Value: v, Set: true}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (m Multiplier) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Capacity(), 10)), nil
}

// Capacity returns the value, or 1 when unset.
func (m Multiplier) Capacity() int64 {
	if !m.Set {
		return 1
	}

	return m.Value
}

// TreeRequest is the body of both tree endpoints. Numbers1 holds the item
// weights, Numbers2 the item values, Multiplier the capacity.
type TreeRequest struct {
	Numbers1   string     `json:"numbers1" validate:"required,intlist"`
	Numbers2   string     `json:"numbers2" validate:"required,intlist"`
	Multiplier Multiplier `json:"multiplier"`
}

// Parse converts the request into item slices and a capacity.
func (r TreeRequest) Parse() (weights, values []int64, capacity int64, err error) {
	if weights, err = parseIntList(r.Numbers1); err != nil {
		return nil, nil, 0, fmt.Errorf("numbers1: %w", err)
	}
	if values, err = parseIntList(r.Numbers2); err != nil {
		return nil, nil, 0, fmt.Errorf("numbers2: %w", err)
	}

	return weights, values, r.Multiplier.Capacity(), nil
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Graphviz bool   `json:"graphviz"`
}

// TreeResponse is returned by POST /api/v1/trees.
type TreeResponse struct {
	RequestID string            `json:"request_id"`
	Weights   []int64           `json:"weights"`
	Values    []int64           `json:"values"`
	Capacity  int64             `json:"capacity"`
	Stats     knapsack.Stats    `json:"stats"`
	Solution  knapsack.Solution `json:"solution"`
	Trace     trace.Document    `json:"trace"`
}
