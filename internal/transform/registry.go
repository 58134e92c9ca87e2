package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (DraftTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_filing", createPostponeFiling)
	registry.Register("set_filing_date", createSetFilingDate)
	registry.Register("set_reaffirmed_date", createSetReaffirmedDate)
	registry.Register("reaffirm_in", createReaffirmIn)
	registry.Register("simplified_mode", createSetSimplifiedMode)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (DraftTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "reaffirm_in:months=6"
func (r *TransformRegistry) ParseTransformSpec(spec string) (DraftTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs, failing on the first bad one
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]DraftTransform, error) {
	transforms := make([]DraftTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func createPostponeFiling(params map[string]string) (DraftTransform, error) {
	months, err := intParam("postpone_filing", params, "months")
	if err != nil {
		return nil, err
	}
	return &PostponeFiling{Months: months}, nil
}

func createSetFilingDate(params map[string]string) (DraftTransform, error) {
	date, err := dateParam("set_filing_date", params)
	if err != nil {
		return nil, err
	}
	return &SetFilingDate{Date: date}, nil
}

func createSetReaffirmedDate(params map[string]string) (DraftTransform, error) {
	date, err := dateParam("set_reaffirmed_date", params)
	if err != nil {
		return nil, err
	}
	return &SetReaffirmedDate{Date: date}, nil
}

func createReaffirmIn(params map[string]string) (DraftTransform, error) {
	months, err := intParam("reaffirm_in", params, "months")
	if err != nil {
		return nil, err
	}
	return &ReaffirmIn{Months: months}, nil
}

func createSetSimplifiedMode(params map[string]string) (DraftTransform, error) {
	enabled := true
	if value, ok := params["enabled"]; ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = parsed
	}
	return &SetSimplifiedMode{Enabled: enabled}, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func dateParam(transform string, params map[string]string) (time.Time, error) {
	raw, ok := params["date"]
	if !ok {
		return time.Time{}, fmt.Errorf("%s requires 'date' parameter", transform)
	}
	date, err := time.Parse(dateutil.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return date, nil
}
