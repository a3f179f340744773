package assets

// LoadFlags controls how Load treats an existing entry.
type LoadFlags int

const (
	// LoadStandard returns the cached handle when one exists.
	LoadStandard LoadFlags = iota
	// LoadReload stops the current task of an entry and schedules a new one.
	LoadReload
)

func (f LoadFlags) String() string {
	if f == LoadReload {
		return "reload"
	}
	return "standard"
}
