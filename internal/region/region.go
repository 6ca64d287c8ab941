package region

import "fmt"

// Position is a byte offset into a source file.
type Position struct {
	Offset uint32
}

// Region is a half-open source span [Start, End).
type Region struct {
	Start Position
	End   Position
}

// New builds a region from raw offsets.
func New(start, end uint32) Region {
	return Region{Start: Position{Offset: start}, End: Position{Offset: end}}
}

// Zero returns the empty region at offset 0. Used for synthesized nodes.
func Zero() Region {
	return Region{}
}

func (r Region) IsEmpty() bool {
	return r.Start.Offset == r.End.Offset
}

func (r Region) Len() uint32 {
	return r.End.Offset - r.Start.Offset
}

// Contains reports whether other lies completely inside r.
func (r Region) Contains(other Region) bool {
	return r.Start.Offset <= other.Start.Offset && other.End.Offset <= r.End.Offset
}

// Merge returns the smallest region covering both a and b.
func Merge(a, b Region) Region {
	start := a.Start
	if b.Start.Offset < start.Offset {
		start = b.Start
	}
	end := a.End
	if b.End.Offset > end.Offset {
		end = b.End
	}
	return Region{Start: start, End: end}
}

func (r Region) String() string {
	return fmt.Sprintf("@%d-%d", r.Start.Offset, r.End.Offset)
}

// Loc attaches a source region to a value.
type Loc[T any] struct {
	Region Region
	Value  T
}

func At[T any](r Region, value T) Loc[T] {
	return Loc[T]{Region: r, Value: value}
}
