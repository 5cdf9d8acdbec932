package mgmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidName is returned for malformed object names.
var ErrInvalidName = errors.New("invalid object name")

// ObjectName identifies a registry entry: a domain plus key properties.
type ObjectName struct {
	Domain     string
	Properties map[string]string
}

// NewObjectName builds an ObjectName, copying props.
func NewObjectName(domain string, props map[string]string) ObjectName {
	cp := make(map[string]string, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return ObjectName{Domain: domain, Properties: cp}
}

// ParseObjectName parses the canonical "domain:k1=v1,k2=v2" form.
func ParseObjectName(s string) (ObjectName, error) {
	domain, rest, ok := strings.Cut(s, ":")
	if !ok {
		return ObjectName{}, fmt.Errorf("%w: %q has no domain separator", ErrInvalidName, s)
	}

	props := make(map[string]string)
	if rest != "" {
		for _, pair := range strings.Split(rest, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return ObjectName{}, fmt.Errorf("%w: property %q is not key=value", ErrInvalidName, pair)
			}
			if _, dup := props[k]; dup {
				return ObjectName{}, fmt.Errorf("%w: duplicate key %q", ErrInvalidName, k)
			}
			props[k] = v
		}
	}

	n := ObjectName{Domain: domain, Properties: props}
	if err := n.Validate(); err != nil {
		return ObjectName{}, err
	}
	return n, nil
}

// Validate checks that the name can be rendered and parsed back unchanged.
func (n ObjectName) Validate() error {
	if n.Domain == "" {
		return fmt.Errorf("%w: empty domain", ErrInvalidName)
	}
	if strings.ContainsAny(n.Domain, ":,=") {
		return fmt.Errorf("%w: domain %q contains a reserved character", ErrInvalidName, n.Domain)
	}
	for k, v := range n.Properties {
		if k == "" {
			return fmt.Errorf("%w: empty property key", ErrInvalidName)
		}
		if strings.ContainsAny(k, ":,=") || strings.ContainsAny(v, ",=") {
			return fmt.Errorf("%w: property %s=%s contains a reserved character", ErrInvalidName, k, v)
		}
	}
	return nil
}

// Property returns the value of key, or "" when absent.
func (n ObjectName) Property(key string) string {
	return n.Properties[key]
}

// String renders the canonical form with keys sorted.
func (n ObjectName) String() string {
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(n.Domain)
	b.WriteByte(':')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(n.Properties[k])
	}
	return b.String()
}

// Matches reports whether n belongs to pattern: same domain and every pattern
// property present in n with the same value.
func (n ObjectName) Matches(pattern ObjectName) bool {
	if n.Domain != pattern.Domain {
		return false
	}
	for k, v := range pattern.Properties {
		got, ok := n.Properties[k]
		if !ok || got != v {
			return false
		}
	}
	return true
}
