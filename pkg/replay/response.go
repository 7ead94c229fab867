package replay

import (
	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

// responseKeys are the recognized property keys shared by all four response
// types, in the declaration order the expected-key error renders.
var responseKeys = attrs.NewKeySet("success", "data", "message", "error", "details")

// Response is the shape shared by every replay and validation response: a
// success flag, a data map that is never nil, a human-readable message, and
// the nullable error and details fields populated on failure.
type Response struct {
	Success bool
	Data    map[string]any
	Message string
	Error   *string
	Details map[string]any
}

// HistoryResponse carries a model's recorded transition history.
type HistoryResponse struct {
	Response
}

// StatisticsResponse carries aggregated state-time statistics.
type StatisticsResponse struct {
	Response
}

// TransitionsResponse carries the transitions replayed for a model.
type TransitionsResponse struct {
	Response
}

// ValidateHistoryResponse carries the outcome of a history consistency check.
type ValidateHistoryResponse struct {
	Response
}

// ResponseOption configures the shared response fields during positional
// construction.
type ResponseOption func(*Response) error

// WithData replaces the data map. Nil resets it to empty; the field is never
// nil on a constructed response.
func WithData(data map[string]any) ResponseOption {
	return func(r *Response) error {
		if data == nil {
			data = map[string]any{}
		}
		r.Data = data
		return nil
	}
}

// WithMessage sets the human-readable message.
func WithMessage(message string) ResponseOption {
	return func(r *Response) error {
		r.Message = message
		return nil
	}
}

// WithError records the failure description.
func WithError(message string) ResponseOption {
	return func(r *Response) error {
		r.Error = &message
		return nil
	}
}

// WithDetails attaches structured failure details.
func WithDetails(details map[string]any) ResponseOption {
	return func(r *Response) error {
		r.Details = details
		return nil
	}
}

// NewHistoryResponse builds a history response from the success flag and
// options.
func NewHistoryResponse(success bool, opts ...ResponseOption) (*HistoryResponse, error) {
	r, err := newResponse(success, opts)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{Response: r}, nil
}

// HistoryResponseFromMap builds a history response from a transport payload.
func HistoryResponseFromMap(m map[string]any) (*HistoryResponse, error) {
	r, err := responseFromMap(m)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{Response: r}, nil
}

// HistoryResponseFromPayload builds a history response from a polymorphic
// legacy payload. See StatisticsResponseFromPayload for the classification
// rules.
func HistoryResponseFromPayload(v any, args ...any) (*HistoryResponse, error) {
	r, err := responseFromPayload(v, args)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{Response: r}, nil
}

// NewStatisticsResponse builds a statistics response from the success flag
// and options.
func NewStatisticsResponse(success bool, opts ...ResponseOption) (*StatisticsResponse, error) {
	r, err := newResponse(success, opts)
	if err != nil {
		return nil, err
	}
	return &StatisticsResponse{Response: r}, nil
}

// StatisticsResponseFromMap builds a statistics response from a transport
// payload.
func StatisticsResponseFromMap(m map[string]any) (*StatisticsResponse, error) {
	r, err := responseFromMap(m)
	if err != nil {
		return nil, err
	}
	return &StatisticsResponse{Response: r}, nil
}

// StatisticsResponseFromPayload builds a statistics response from a
// polymorphic legacy payload. A property map populates the fields and any
// further arguments are ignored; a boolean first argument selects the
// positional form success, data, message, error, details; empty, callable,
// sequential, and numeric-keyed arrays are rejected with shape errors.
func StatisticsResponseFromPayload(v any, args ...any) (*StatisticsResponse, error) {
	r, err := responseFromPayload(v, args)
	if err != nil {
		return nil, err
	}
	return &StatisticsResponse{Response: r}, nil
}

// NewTransitionsResponse builds a transitions response from the success flag
// and options.
func NewTransitionsResponse(success bool, opts ...ResponseOption) (*TransitionsResponse, error) {
	r, err := newResponse(success, opts)
	if err != nil {
		return nil, err
	}
	return &TransitionsResponse{Response: r}, nil
}

// TransitionsResponseFromMap builds a transitions response from a transport
// payload.
func TransitionsResponseFromMap(m map[string]any) (*TransitionsResponse, error) {
	r, err := responseFromMap(m)
	if err != nil {
		return nil, err
	}
	return &TransitionsResponse{Response: r}, nil
}

// TransitionsResponseFromPayload builds a transitions response from a
// polymorphic legacy payload. See StatisticsResponseFromPayload for the
// classification rules.
func TransitionsResponseFromPayload(v any, args ...any) (*TransitionsResponse, error) {
	r, err := responseFromPayload(v, args)
	if err != nil {
		return nil, err
	}
	return &TransitionsResponse{Response: r}, nil
}

// NewValidateHistoryResponse builds a validation response from the success
// flag and options.
func NewValidateHistoryResponse(success bool, opts ...ResponseOption) (*ValidateHistoryResponse, error) {
	r, err := newResponse(success, opts)
	if err != nil {
		return nil, err
	}
	return &ValidateHistoryResponse{Response: r}, nil
}

// ValidateHistoryResponseFromMap builds a validation response from a
// transport payload.
func ValidateHistoryResponseFromMap(m map[string]any) (*ValidateHistoryResponse, error) {
	r, err := responseFromMap(m)
	if err != nil {
		return nil, err
	}
	return &ValidateHistoryResponse{Response: r}, nil
}

// ValidateHistoryResponseFromPayload builds a validation response from a
// polymorphic legacy payload. See StatisticsResponseFromPayload for the
// classification rules.
func ValidateHistoryResponseFromPayload(v any, args ...any) (*ValidateHistoryResponse, error) {
	r, err := responseFromPayload(v, args)
	if err != nil {
		return nil, err
	}
	return &ValidateHistoryResponse{Response: r}, nil
}

// ToMap renders the response as a transport payload. Every key is present;
// the nullable fields render as explicit nulls.
func (r Response) ToMap() map[string]any {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	m := map[string]any{
		"success": r.Success,
		"data":    data,
		"message": r.Message,
		"error":   nil,
		"details": nil,
	}
	if r.Error != nil {
		m["error"] = *r.Error
	}
	if r.Details != nil {
		m["details"] = r.Details
	}
	return m
}

func newResponse(success bool, opts []ResponseOption) (Response, error) {
	r := Response{Success: success, Data: map[string]any{}}
	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return Response{}, err
		}
	}
	return r, nil
}

func responseFromMap(m map[string]any) (Response, error) {
	nm := attrs.Normalize(m, responseKeys)

	var (
		r   Response
		err error
	)
	if r.Success, _, err = nm.Bool("success"); err != nil {
		return Response{}, err
	}
	if r.Data, _, err = nm.NullableStringMap("data"); err != nil {
		return Response{}, err
	}
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	if r.Message, _, err = nm.String("message"); err != nil {
		return Response{}, err
	}
	if r.Error, _, err = nm.NullableString("error"); err != nil {
		return Response{}, err
	}
	if r.Details, _, err = nm.NullableStringMap("details"); err != nil {
		return Response{}, err
	}
	return r, nil
}

// responseFromPayload classifies the polymorphic first argument before any
// field is read. The callable test runs inside Classify ahead of the
// associative checks, so a [class, method] pair is always reported as a
// callable misuse and never as a malformed property map.
func responseFromPayload(v any, rest []any) (Response, error) {
	shape := attrs.Classify(v, responseKeys)
	switch shape.Kind {
	case attrs.KindPropertyMap:
		// The map carries the whole response; further positional
		// arguments are ignored.
		return responseFromMap(shape.Map)
	case attrs.KindCallable:
		return Response{}, &attrs.ShapeError{Cause: attrs.CauseCallable, Keys: responseKeys.Keys()}
	case attrs.KindInvalid:
		return Response{}, &attrs.ShapeError{Cause: shape.Cause, Keys: responseKeys.Keys()}
	default:
		return responseFromArgs(shape.Value, rest)
	}
}

// responseFromArgs is the positional legacy form: success, data, message,
// error, details in order. Nil skips a position and keeps its default.
func responseFromArgs(success any, rest []any) (Response, error) {
	r := Response{Data: map[string]any{}}

	flag, ok := success.(bool)
	if !ok {
		return Response{}, attrs.NewParamError("success", "a boolean", success)
	}
	r.Success = flag

	if len(rest) > 0 && rest[0] != nil {
		data, err := paramMap("data", "a map", rest[0])
		if err != nil {
			return Response{}, err
		}
		r.Data = data
	}
	if len(rest) > 1 && rest[1] != nil {
		msg, ok := rest[1].(string)
		if !ok {
			return Response{}, attrs.NewParamError("message", "a string", rest[1])
		}
		r.Message = msg
	}
	if len(rest) > 2 && rest[2] != nil {
		errMsg, ok := rest[2].(string)
		if !ok {
			return Response{}, attrs.NewParamError("error", "a string or null", rest[2])
		}
		r.Error = &errMsg
	}
	if len(rest) > 3 && rest[3] != nil {
		details, err := paramMap("details", "a map or null", rest[3])
		if err != nil {
			return Response{}, err
		}
		r.Details = details
	}
	return r, nil
}

func paramMap(name, expected string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case attrs.Map:
		return m, nil
	default:
		return nil, attrs.NewParamError(name, expected, v)
	}
}
