package reservation

// PriceCalculator quotes the total for a set of rooms over a stay window.
// The server recomputes the quote on every booking and every edit; any
// caller-supplied total is advisory only.
type PriceCalculator interface {
	Quote(rooms []RoomStay, window StayWindow) Money
}

type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (pc *NightlyPriceCalculator) Quote(rooms []RoomStay, window StayWindow) Money {
	nights := window.Nights()
	var total int64
	for _, r := range rooms {
		total += r.NightlyRateCents * int64(nights)
	}
	return NewMoney(total)
}
