package engine

// Color constants, packed into the upper 4 bits of Card.
const (
	ColorRed    uint8 = 0
	ColorYellow uint8 = 1
	ColorGreen  uint8 = 2
	ColorBlue   uint8 = 3
	ColorWild   uint8 = 4
)

// Rank constants, packed into the lower 4 bits of Card.
// Ranks 0–9 are the number cards; the rest are action cards.
const (
	RankZero         uint8 = 0
	RankNine         uint8 = 9
	RankSkip         uint8 = 10
	RankReverse      uint8 = 11
	RankDrawTwo      uint8 = 12
	RankWild         uint8 = 13
	RankWildDrawFour uint8 = 14
)

// NumColors is the count of playable colors (Wild excluded).
const NumColors uint8 = 4

// Card is a packed uint8: upper 4 bits = color, lower 4 bits = rank.
// Wild-family cards always carry ColorWild; the chosen color after a
// wild play lives in GameState.CurrentColor, never in the card itself.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from color and rank.
func NewCard(color, rank uint8) Card {
	return Card((color << 4) | (rank & 0x0F))
}

// Color returns the color bits (upper 4).
func (c Card) Color() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsNumber returns true for ranks 0–9.
func (c Card) IsNumber() bool { return c.Rank() <= RankNine }

// IsWild returns true for Wild and WildDrawFour.
func (c Card) IsWild() bool { return c.Color() == ColorWild }

var colorNames = [5]string{"Red", "Yellow", "Green", "Blue", "Wild"}

// ColorName returns the display name for a color constant.
func ColorName(color uint8) string {
	if color < uint8(len(colorNames)) {
		return colorNames[color]
	}
	return "?"
}

// RankName returns the display name for a rank constant.
func RankName(rank uint8) string {
	switch {
	case rank <= RankNine:
		return string('0' + rune(rank))
	case rank == RankSkip:
		return "Skip"
	case rank == RankReverse:
		return "Reverse"
	case rank == RankDrawTwo:
		return "DrawTwo"
	case rank == RankWild:
		return "Wild"
	case rank == RankWildDrawFour:
		return "WildDrawFour"
	}
	return "?"
}

func (c Card) String() string {
	if c == EmptyCard {
		return "none"
	}
	if c.IsWild() {
		return RankName(c.Rank())
	}
	return ColorName(c.Color()) + " " + RankName(c.Rank())
}
