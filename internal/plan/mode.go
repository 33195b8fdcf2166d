package plan

//go:generate go tool stringer -type=Mode -trimprefix=Mode -output=mode_string.go

// Mode is the construction mode of a field.
type Mode int

const (
	// ModeRequired fields must be set before Build.
	ModeRequired Mode = iota
	// ModeOptional fields are declared as an optional wrapper and may stay unset.
	ModeOptional
	// ModeAccumulating fields collect items one at a time and start empty.
	ModeAccumulating
)
