package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStayWindow = errors.New("check-in must be before check-out")
	ErrStayInPast        = errors.New("check-in cannot be in the past")
	ErrNoAdults          = errors.New("at least one adult is required")
	ErrNegativeChildren  = errors.New("child count cannot be negative")
	ErrNegativePrice     = errors.New("price cannot be negative")
)

// StayWindow is a half-open interval [checkIn, checkOut): a check-out on
// day N does not conflict with a check-in on day N.
type StayWindow struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayWindow(checkIn, checkOut time.Time) (StayWindow, error) {
	if !checkIn.Before(checkOut) {
		return StayWindow{}, ErrInvalidStayWindow
	}
	return StayWindow{checkIn: checkIn, checkOut: checkOut}, nil
}

func (w StayWindow) CheckIn() time.Time  { return w.checkIn }
func (w StayWindow) CheckOut() time.Time { return w.checkOut }

func (w StayWindow) Duration() time.Duration {
	return w.checkOut.Sub(w.checkIn)
}

// Nights rounds partial days up and never returns less than one night,
// so a stay slightly under 24h is still billed as a full night.
func (w StayWindow) Nights() int {
	hours := w.checkOut.Sub(w.checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

func (w StayWindow) Overlaps(other StayWindow) bool {
	return w.checkIn.Before(other.checkOut) && w.checkOut.After(other.checkIn)
}

func (w StayWindow) Equal(other StayWindow) bool {
	return w.checkIn.Equal(other.checkIn) && w.checkOut.Equal(other.checkOut)
}

// ValidateNotPastAt rejects windows whose check-in falls before the start
// of the current day in now's location.
func (w StayWindow) ValidateNotPastAt(now time.Time) error {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if w.checkIn.Before(today) {
		return ErrStayInPast
	}
	return nil
}

// NoticeAt reports how far ahead of check-in the given instant is.
func (w StayWindow) NoticeAt(now time.Time) time.Duration {
	return w.checkIn.Sub(now)
}

func (w StayWindow) String() string {
	return fmt.Sprintf("[%s,%s)", w.checkIn.Format(time.RFC3339), w.checkOut.Format(time.RFC3339))
}

type GuestCount struct {
	adults   int
	children int
}

func NewGuestCount(adults, children int) (GuestCount, error) {
	if adults < 1 {
		return GuestCount{}, ErrNoAdults
	}
	if children < 0 {
		return GuestCount{}, ErrNegativeChildren
	}
	return GuestCount{adults: adults, children: children}, nil
}

func (g GuestCount) Adults() int   { return g.adults }
func (g GuestCount) Children() int { return g.children }
func (g GuestCount) Total() int    { return g.adults + g.children }

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewNonNegativeMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

// WithinEpsilon reports whether other differs from m by at most
// epsilonCents in either direction.
func (m Money) WithinEpsilon(other Money, epsilonCents int64) bool {
	diff := m.cents - other.cents
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilonCents
}
