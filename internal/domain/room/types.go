package room

import "errors"

var (
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidViewKind = errors.New("invalid view kind")
	ErrInvalidBedType  = errors.New("invalid bed type")
)

type RoomType string

const (
	TypeStandard RoomType = "standard"
	TypeDeluxe   RoomType = "deluxe"
	TypeSuite    RoomType = "suite"
	TypeFamily   RoomType = "family"
)

func (t RoomType) String() string {
	return string(t)
}

func (t RoomType) IsValid() bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeSuite, TypeFamily:
		return true
	default:
		return false
	}
}

func NewRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.IsValid() {
		return "", ErrInvalidRoomType
	}
	return t, nil
}

type ViewKind string

const (
	ViewCity      ViewKind = "city"
	ViewSea       ViewKind = "sea"
	ViewGarden    ViewKind = "garden"
	ViewCourtyard ViewKind = "courtyard"
)

func (v ViewKind) String() string {
	return string(v)
}

func (v ViewKind) IsValid() bool {
	switch v {
	case ViewCity, ViewSea, ViewGarden, ViewCourtyard:
		return true
	default:
		return false
	}
}

func NewViewKind(s string) (ViewKind, error) {
	v := ViewKind(s)
	if !v.IsValid() {
		return "", ErrInvalidViewKind
	}
	return v, nil
}

type BedType string

const (
	BedSingle BedType = "single"
	BedDouble BedType = "double"
	BedQueen  BedType = "queen"
	BedKing   BedType = "king"
	BedTwin   BedType = "twin"
)

func (b BedType) String() string {
	return string(b)
}

func (b BedType) IsValid() bool {
	switch b {
	case BedSingle, BedDouble, BedQueen, BedKing, BedTwin:
		return true
	default:
		return false
	}
}

func NewBedType(s string) (BedType, error) {
	b := BedType(s)
	if !b.IsValid() {
		return "", ErrInvalidBedType
	}
	return b, nil
}
