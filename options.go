package gdalkit

import (
	"fmt"
	"strings"
)

// StringList is a list of KEY=VALUE or plain strings following the CSL
// conventions used throughout GDAL to pass options to its various functions.
type StringList []string

// Count returns the number of entries in the list
func (l StringList) Count() int {
	return len(l)
}

// AddString appends value to the list without any KEY=VALUE interpretation
func (l *StringList) AddString(value string) {
	*l = append(*l, value)
}

// Set assigns value to name, overwriting a duplicate name if present. name
// must only contain ascii alphanumeric characters or underscores, and value
// must not contain newline characters.
func (l *StringList) Set(name, value string) error {
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return fmt.Errorf("invalid characters in name %q", name)
		}
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("invalid characters in value %q", value)
	}
	for i, s := range *l {
		k, _, ok := splitNameValue(s)
		if ok && strings.EqualFold(k, name) {
			(*l)[i] = name + "=" + value
			return nil
		}
	}
	*l = append(*l, name+"="+value)
	return nil
}

// FetchNameValue looks up the value corresponding to name. The name match is
// case-insensitive, and either '=' or ':' are accepted as separator.
func (l StringList) FetchNameValue(name string) (string, bool) {
	for _, s := range l {
		k, v, ok := splitNameValue(s)
		if ok && strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// FindString returns the index of the first entry equal to value ignoring
// case, or -1 if not found
func (l StringList) FindString(value string) int {
	for i, s := range l {
		if strings.EqualFold(s, value) {
			return i
		}
	}
	return -1
}

// FindStringCaseSensitive returns the index of the first entry equal to
// value, or -1 if not found
func (l StringList) FindStringCaseSensitive(value string) int {
	for i, s := range l {
		if s == value {
			return i
		}
	}
	return -1
}

// PartialFindString returns the index of the first entry containing fragment,
// or -1 if not found
func (l StringList) PartialFindString(fragment string) int {
	for i, s := range l {
		if strings.Contains(s, fragment) {
			return i
		}
	}
	return -1
}

func splitNameValue(s string) (name, value string, ok bool) {
	i := strings.IndexAny(s, "=:")
	if i <= 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
