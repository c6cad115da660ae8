package pipeline

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

// DefaultFill substitutes declared defaults for unset optional fields.
// Running it twice is a no-op, since a filled field is no longer unset.
type DefaultFill struct {
	log zerolog.Logger
}

func NewDefaultFill(log zerolog.Logger) *DefaultFill {
	return &DefaultFill{log: log.With().Str("stage", "defaults").Logger()}
}

func (d *DefaultFill) Process(e domain.Entity) (domain.Entity, bool) {
	rv := reflect.ValueOf(e)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return e, true
	}
	rv = rv.Elem()

	for _, spec := range domain.Schemas[e.Kind()] {
		if spec.Default == nil {
			continue
		}
		f := rv.FieldByName(spec.Name)
		if !f.IsValid() || f.Kind() != reflect.Pointer || !f.IsNil() {
			continue
		}
		def := reflect.ValueOf(spec.Default)
		p := reflect.New(f.Type().Elem())
		p.Elem().Set(def.Convert(f.Type().Elem()))
		f.Set(p)
	}
	return e, true
}

// Validator checks every field against the entity's schema. Failures are
// logged and the entity is kept: a single missed enum value should degrade
// gracefully, not silently lose a page's worth of data.
type Validator struct {
	log zerolog.Logger
}

func NewValidator(log zerolog.Logger) *Validator {
	return &Validator{log: log.With().Str("stage", "validate").Logger()}
}

func (v *Validator) Process(e domain.Entity) (domain.Entity, bool) {
	rv := reflect.ValueOf(e)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return e, true
	}
	rv = rv.Elem()

	for _, spec := range domain.Schemas[e.Kind()] {
		f := rv.FieldByName(spec.Name)
		if !f.IsValid() {
			continue
		}

		if unset(f) {
			if !spec.Optional {
				v.warn(e, spec, "required field unset")
			}
			continue
		}

		val := f
		if val.Kind() == reflect.Pointer {
			val = val.Elem()
		}

		if spec.Min != nil && val.CanInt() && int(val.Int()) < *spec.Min {
			v.warn(e, spec, "value below minimum")
		}

		if len(spec.Enum) > 0 && val.Kind() == reflect.String {
			if !contains(spec.Enum, val.String()) {
				v.log.Warn().Str("kind", string(e.Kind())).Str("field", spec.JSON).
					Str("value", val.String()).Msg("value outside allowed set")
			}
		}

		if len(spec.MapKeys) > 0 && val.Kind() == reflect.Map {
			v.checkMapKeys(e, spec, val)
		}
	}
	return e, true
}

func (v *Validator) checkMapKeys(e domain.Entity, spec domain.FieldSpec, val reflect.Value) {
	if val.Len() != len(spec.MapKeys) {
		v.warn(e, spec, "map key set mismatch")
		return
	}
	for _, k := range spec.MapKeys {
		if !val.MapIndex(reflect.ValueOf(k)).IsValid() {
			v.warn(e, spec, "map key set mismatch")
			return
		}
	}
}

func (v *Validator) warn(e domain.Entity, spec domain.FieldSpec, msg string) {
	v.log.Warn().Str("kind", string(e.Kind())).Str("field", spec.JSON).Msg(msg)
}

// unset reports whether a field value counts as "not provided": nil pointer,
// nil map, or the empty string for plain string fields. Plain ints are
// always considered set (zero is a legitimate epno and order).
func unset(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return f.IsNil()
	case reflect.String:
		return f.String() == ""
	default:
		return false
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
