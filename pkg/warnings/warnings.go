// Package warnings provides non-fatal diagnostics that code under
// test can emit and that callers can capture. A warning carries a
// Category; categories form a tree rooted at Base, and a warning
// matches every category on its path to the root.
package warnings

import (
	"fmt"
	"sync"

	"digital.vasic.assertions/pkg/logging"
)

// LoggerName is the hub logger that receives uncaught warnings.
const LoggerName = "warnings"

// Category classifies a warning. Categories are compared by identity.
type Category struct {
	name   string
	parent *Category
}

// NewCategory creates a category below parent. A nil parent places it
// directly below Base.
func NewCategory(name string, parent *Category) *Category {
	if parent == nil {
		parent = Base
	}
	return &Category{name: name, parent: parent}
}

// Built-in categories.
var (
	Base        = &Category{name: "Warning"}
	User        = NewCategory("UserWarning", Base)
	Deprecation = NewCategory("DeprecationWarning", Base)
	Runtime     = NewCategory("RuntimeWarning", Base)
	Resource    = NewCategory("ResourceWarning", Base)
	Bytes       = NewCategory("BytesWarning", Base)
)

// Name returns the category name.
func (c *Category) Name() string {
	return c.name
}

// Parent returns the parent category, nil for Base.
func (c *Category) Parent() *Category {
	return c.parent
}

// Error lets a category be used as an errors.Is target.
func (c *Category) Error() string {
	return c.name
}

// IsA reports whether c is other or one of its descendants.
func (c *Category) IsA(other *Category) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Warning is a single emitted warning.
type Warning struct {
	Category *Category
	Message  string
}

// Error implements error.
func (w *Warning) Error() string {
	return fmt.Sprintf("%s: %s", w.Category.Name(), w.Message)
}

// Is matches a *Category target that w's category descends from.
func (w *Warning) Is(target error) bool {
	c, ok := target.(*Category)
	return ok && w.Category.IsA(c)
}

// Catcher records warnings emitted while it is the innermost active
// catcher.
type Catcher struct {
	mu       sync.Mutex
	warnings []*Warning
}

var (
	stackMu  sync.Mutex
	catchers []*Catcher
)

// Catch pushes a new catcher. Every Catch must be paired with Release.
func Catch() *Catcher {
	c := &Catcher{}
	stackMu.Lock()
	catchers = append(catchers, c)
	stackMu.Unlock()
	return c
}

// Release removes c from the catcher stack. It is safe to call more
// than once.
func (c *Catcher) Release() {
	stackMu.Lock()
	defer stackMu.Unlock()
	for i := len(catchers) - 1; i >= 0; i-- {
		if catchers[i] == c {
			catchers = append(catchers[:i], catchers[i+1:]...)
			return
		}
	}
}

// Warnings returns a copy of the recorded warnings in emission order.
func (c *Catcher) Warnings() []*Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Catcher) record(w *Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Warn emits a warning of category cat. A nil cat means User. The
// innermost active catcher records it; without one it is logged on
// the LoggerName logger of the default hub.
func Warn(cat *Category, msg string) {
	if cat == nil {
		cat = User
	}
	w := &Warning{Category: cat, Message: msg}

	stackMu.Lock()
	var top *Catcher
	if n := len(catchers); n > 0 {
		top = catchers[n-1]
	}
	stackMu.Unlock()

	if top != nil {
		top.record(w)
		return
	}

	logging.Get(LoggerName).Warn(msg,
		logging.StringField("category", cat.Name()),
	)
}

// Warnf is Warn with a format string.
func Warnf(cat *Category, format string, args ...any) {
	Warn(cat, fmt.Sprintf(format, args...))
}
