package input

// Context provides context for input processing.
// It tracks the state a request was made in.
type Context struct {
	// FilePath is the path of the current file, empty for unsaved text.
	FilePath string

	// HasSelection indicates whether there is an active selection.
	HasSelection bool

	// LineNumber is the current line number (1-based).
	LineNumber uint32

	// ColumnNumber is the current column number (0-based).
	ColumnNumber uint32

	// PendingCount is the accumulated count prefix.
	PendingCount int
}

// NewContext creates a new input context with default values.
func NewContext() *Context {
	return &Context{}
}

// HasPendingCount returns true if a count prefix has been entered.
func (c *Context) HasPendingCount() bool {
	return c.PendingCount > 0
}

// GetCount returns the pending count, or 1 if no count is set.
func (c *Context) GetCount() int {
	if c.PendingCount <= 0 {
		return 1
	}
	return c.PendingCount
}

// MaxCount is the largest count a prefix can accumulate to.
const MaxCount = 1_000_000

// AccumulateCount adds a digit to the pending count.
// Digits outside 0-9 are ignored, as is a leading zero. The count
// saturates at MaxCount.
func (c *Context) AccumulateCount(digit int) {
	if digit < 0 || digit > 9 {
		return
	}
	if digit == 0 && c.PendingCount == 0 {
		return
	}
	if c.PendingCount > (MaxCount-digit)/10 {
		c.PendingCount = MaxCount
		return
	}
	c.PendingCount = c.PendingCount*10 + digit
}

// ClearPending clears the pending count.
func (c *Context) ClearPending() {
	c.PendingCount = 0
}
