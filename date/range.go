package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

func (r Range) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
