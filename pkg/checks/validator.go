package checks

import (
	"fmt"
	"os"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"digital.vasic.assertions/pkg/assertion"
)

// ValidationError represents a validation issue found in a check file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("checks[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(
			gojsonschema.NewBytesLoader(schemaJSON),
		)
	})
	return schema, schemaErr
}

// ValidateFile validates a check file against the schema and reg and
// returns all errors found.
func ValidateFile(path string, reg assertion.Registry) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}
	return validate(data, isJSON(path), reg)
}

// Validate validates a YAML check document.
func Validate(data []byte, reg assertion.Registry) []ValidationError {
	return validate(data, false, reg)
}

func validate(data []byte, asJSON bool, reg assertion.Registry) []ValidationError {
	var doc any
	if err := decode(data, asJSON, &doc); err != nil {
		return []ValidationError{{Field: "syntax", Message: err.Error(), Index: -1}}
	}

	if errs := validateSchema(doc); len(errs) > 0 {
		return errs
	}

	var file File
	if err := decode(data, asJSON, &file); err != nil {
		return []ValidationError{{Field: "syntax", Message: err.Error(), Index: -1}}
	}
	return validateChecks(&file, reg)
}

func validateSchema(doc any) []ValidationError {
	s, err := compiledSchema()
	if err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Index: -1}}
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []ValidationError{{Field: "document", Message: err.Error(), Index: -1}}
	}

	var errs []ValidationError
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Index:   -1,
		})
	}
	return errs
}

func validateChecks(file *File, reg assertion.Registry) []ValidationError {
	var errs []ValidationError

	ids := make(map[string]bool)
	for i, c := range file.Checks {
		if ids[c.ID] {
			errs = append(errs, ValidationError{
				Field: "id", Message: fmt.Sprintf("duplicate ID: %s", c.ID), Index: i,
			})
		}
		ids[c.ID] = true

		if c.Template && c.Message == "" {
			errs = append(errs, ValidationError{
				Field: "template", Message: "template set without a message", Index: i,
			})
		}

		kind, ok := reg.Lookup(c.Kind)
		if !ok {
			errs = append(errs, ValidationError{
				Field: "kind", Message: fmt.Sprintf("unknown assertion kind: %s", c.Kind), Index: i,
			})
			continue
		}
		if kind.Scoped {
			errs = append(errs, ValidationError{
				Field: "kind", Message: fmt.Sprintf("%s needs a Go callable and cannot run from a file", c.Kind), Index: i,
			})
			continue
		}

		for _, p := range kind.Params[:kind.Required] {
			if _, ok := c.Args[p]; !ok {
				errs = append(errs, ValidationError{
					Field: "args", Message: fmt.Sprintf("missing required argument %q", p), Index: i,
				})
			}
		}
		if _, ok := c.Args[assertion.MessageKey]; ok {
			errs = append(errs, ValidationError{
				Field: "args", Message: "use the message field instead of args.message", Index: i,
			})
		}
	}

	return errs
}
