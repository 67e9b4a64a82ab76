package bitcointx

import (
	"errors"
	"strings"
)

// Validate checks e against its schema and returns an error joining every
// failure: a *ValidationError for each required or derived field left empty
// and a *ParseError for each applicable numeric field that is not a number.
// Hidden fields are not checked, whatever their content.
func Validate(e Entry) error {
	if e == nil {
		return missing(FieldType)
	}
	var errs []error
	for _, spec := range Schema(e) {
		if spec.State == Hidden {
			continue
		}
		v := e.Value(spec.Field)
		if strings.TrimSpace(v) == "" {
			if spec.State == Required || spec.State == ReadOnly {
				errs = append(errs, missing(spec.Field))
			}
			continue
		}
		if spec.Field.Numeric() {
			if _, err := ParseAmount(spec.Field, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
