// FILE: override.go
package multilog

import (
	"reflect"
	"strconv"
)

// ApplyConfigString applies "key=value" overrides on top of the current
// configuration and reconfigures the logger. Keys are the toml tag names
// from Config; level-valued keys also accept names ("level=debug").
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.GetConfig()

	var errs error
	for _, arg := range overrides {
		key, value, err := parseKeyValue(arg)
		if err != nil {
			errs = combineErrors(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = combineErrors(errs, err)
		}
	}
	if errs != nil {
		return errs
	}

	return l.ApplyConfig(cfg)
}

// levelKeys are fields that accept symbolic level names in overrides
var levelKeys = map[string]bool{
	"level":            true,
	"auto_flush_level": true,
	"console_level":    true,
	"file_level":       true,
}

// applyConfigField sets one Config field identified by its toml tag
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}
		field := v.Field(i)

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Int64:
			if levelKeys[key] {
				if lvl, err := Level(value); err == nil {
					field.SetInt(lvl)
					return nil
				}
			}
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmtErrorf("invalid integer for '%s': %s", key, value)
			}
			field.SetInt(n)

		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmtErrorf("invalid boolean for '%s': %s", key, value)
			}
			field.SetBool(b)

		default:
			return fmtErrorf("unsupported field type for '%s'", key)
		}
		return nil
	}

	return fmtErrorf("unknown configuration key: '%s'", key)
}
