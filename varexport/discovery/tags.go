package discovery

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

const (
	exportTag = "export"
	docTag    = "doc"
)

// fieldAttribute builds the attribute for a tagged struct field. ok is false
// when the field carries no export tag or opts out with "-".
func fieldAttribute(owner reflect.Type, f reflect.StructField, path []int) (attr Attribute, ok bool, err error) {
	tag, tagged := f.Tag.Lookup(exportTag)
	if !tagged || tag == "-" {
		return Attribute{}, false, nil
	}
	if !f.IsExported() {
		return Attribute{}, false, fmt.Errorf("%w: field %s.%s is tagged but not exported", ErrInvalidDeclaration, owner, f.Name)
	}
	if f.Type.Kind() == reflect.Func && !accessorShape(f.Type, 0) {
		return Attribute{}, false, fmt.Errorf("%w: func field %s.%s must have no arguments and return T or (T, error)", ErrInvalidDeclaration, owner, f.Name)
	}

	parts := strings.Split(tag, ",")
	attr = Attribute{
		Member:  "field:" + f.Name,
		Natural: f.Name,
		Name:    strings.TrimSpace(parts[0]),
		Doc:     f.Tag.Get(docTag),
		get:     fieldGetter(path),
	}
	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "":
		case opt == "expand":
			attr.Expand = true
		case strings.HasPrefix(opt, "ttl="):
			ttl, err := time.ParseDuration(strings.TrimPrefix(opt, "ttl="))
			if err != nil || ttl < 0 {
				return Attribute{}, false, fmt.Errorf("%w: field %s.%s has bad ttl %q", ErrInvalidDeclaration, owner, f.Name, opt)
			}
			attr.TTL = ttl
		default:
			return Attribute{}, false, fmt.Errorf("%w: field %s.%s has unknown option %q", ErrInvalidDeclaration, owner, f.Name, opt)
		}
	}
	return attr, true, nil
}
