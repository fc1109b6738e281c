package notify

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/colonyops/dashbell/internal/core/validate"
	"github.com/hay-kot/criterio"
)

// Validator checks untrusted values against the Notification shape.
// The zero value accepts any non-empty category and uses the wall clock.
type Validator struct {
	// Categories restricts the accepted categories. Empty means any
	// non-empty string is accepted.
	Categories []Category

	// Now returns the reference time for future-timestamp checks and
	// age-relative timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of Validator.Check. Err is nil when Notification
// holds a valid value.
type Result struct {
	Notification Notification
	Err          error
}

// OK reports whether the checked value was a valid notification.
func (r Result) OK() bool { return r.Err == nil }

func (v Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v Validator) allowed() []string {
	out := make([]string, len(v.Categories))
	for i, c := range v.Categories {
		out[i] = string(c)
	}
	return out
}

// IsCategory reports whether value is a category this validator accepts.
func (v Validator) IsCategory(value any) bool {
	var name string
	switch c := value.(type) {
	case Category:
		name = string(c)
	case string:
		name = c
	default:
		return false
	}
	return validate.Category(name, v.allowed()) == nil
}

// IsNotification reports whether value is a well-formed notification.
func (v Validator) IsNotification(value any) bool {
	return v.Check(value).OK()
}

// Check validates value. Accepted inputs are a Notification, a
// *Notification, or a decoded JSON/YAML object. Field problems are reported
// together as criterio.FieldErrors.
func (v Validator) Check(value any) Result {
	switch x := value.(type) {
	case Notification:
		return v.checkNotification(x)
	case *Notification:
		if x == nil {
			return Result{Err: errors.New("notification is nil")}
		}
		return v.checkNotification(*x)
	case map[string]any:
		return v.checkObject(x)
	default:
		return Result{Err: fmt.Errorf("expected a notification object, got %T", value)}
	}
}

func (v Validator) checkNotification(n Notification) Result {
	var errs criterio.FieldErrorsBuilder

	if err := validate.NotificationID(n.ID); err != nil {
		errs = errs.Append("id", err)
	}
	if err := validate.Category(string(n.Category), v.allowed()); err != nil {
		errs = errs.Append("category", err)
	}
	if err := v.checkTimestamp(n.Timestamp); err != nil {
		errs = errs.Append("timestamp", err)
	}

	if err := errs.ToError(); err != nil {
		return Result{Err: err}
	}
	return Result{Notification: n}
}

func (v Validator) checkObject(m map[string]any) Result {
	var (
		errs criterio.FieldErrorsBuilder
		n    Notification
		err  error
	)

	if n.ID, err = stringField(m, "id"); err == nil {
		err = validate.NotificationID(n.ID)
	}
	if err != nil {
		errs = errs.Append("id", err)
	}

	if n.Title, err = stringField(m, "title"); err != nil {
		errs = errs.Append("title", err)
	}

	if n.Message, err = stringField(m, "message"); err != nil {
		errs = errs.Append("message", err)
	}

	if n.IsRead, err = boolField(m, "isRead"); err != nil {
		errs = errs.Append("isRead", err)
	}

	var category string
	if category, err = stringField(m, "category"); err == nil {
		err = validate.Category(category, v.allowed())
	}
	if err != nil {
		errs = errs.Append("category", err)
	}
	n.Category = Category(category)

	if n.Timestamp, err = v.timestampField(m); err == nil {
		err = v.checkTimestamp(n.Timestamp)
	}
	if err != nil {
		errs = errs.Append("timestamp", err)
	}

	if err := errs.ToError(); err != nil {
		return Result{Err: err}
	}
	return Result{Notification: n}
}

func (v Validator) checkTimestamp(ts time.Time) error {
	if ts.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if ts.After(v.now()) {
		return fmt.Errorf("timestamp %s is in the future", ts.Format(time.RFC3339))
	}
	return nil
}

func (v Validator) timestampField(m map[string]any) (time.Time, error) {
	raw, ok := m["timestamp"]
	if !ok {
		age, ok := m["age"]
		if !ok {
			return time.Time{}, fmt.Errorf("timestamp is required")
		}
		return v.fromAge(age)
	}

	switch t := raw.(type) {
	case time.Time:
		return t, nil
	case string:
		ts, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid RFC 3339 timestamp %q", t)
		}
		return ts, nil
	case int:
		return time.UnixMilli(int64(t)), nil
	case int64:
		return time.UnixMilli(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return time.Time{}, fmt.Errorf("timestamp %d is out of range", t)
		}
		return time.UnixMilli(int64(t)), nil
	case float64:
		if t != math.Trunc(t) || math.Abs(t) >= math.MaxInt64 {
			return time.Time{}, fmt.Errorf("timestamp %v is not whole epoch milliseconds", t)
		}
		return time.UnixMilli(int64(t)), nil
	default:
		return time.Time{}, fmt.Errorf("timestamp must be RFC 3339 text or epoch milliseconds, got %T", raw)
	}
}

func (v Validator) fromAge(raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("age must be a duration string, got %T", raw)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid age %q: %w", s, err)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("age %q must not be negative", s)
	}
	return v.now().Add(-d), nil
}

func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, fmt.Errorf("%s is required", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, raw)
	}
	return b, nil
}
