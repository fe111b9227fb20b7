package engine

// ---------------------------------------------------------------------------
// Action index constants
// ---------------------------------------------------------------------------
//
// Layout:
//   0       Pass (decline to play the auto-drawn card)
//   1–4     ChooseColor(Red..Blue)
//   5–112   Play(handIdx), one slot per possible hand position
//   Total: 113
//
// Drawing is engine-initiated: when the turn player holds no legal
// play, the engine draws for them and either offers the drawn card
// (PhaseAwaitDrawDecision) or ends the turn. Agents therefore never
// submit a draw action.

const (
	ActionPass            uint16 = 0
	ActionBaseChooseColor uint16 = 1 // ChooseColor(0)..ChooseColor(3)
	ActionBasePlay        uint16 = 5 // Play(0)..Play(107)

	NumActions uint16 = 113
)

// EncodePlay returns the action index for playing the hand card at handIdx.
func EncodePlay(handIdx uint8) uint16 { return ActionBasePlay + uint16(handIdx) }

// EncodeChooseColor returns the action index for choosing the given color.
func EncodeChooseColor(color uint8) uint16 { return ActionBaseChooseColor + uint16(color) }

// ActionIsPlay returns the hand index if idx encodes a Play action.
func ActionIsPlay(idx uint16) (handIdx uint8, ok bool) {
	if idx >= ActionBasePlay && idx < NumActions {
		return uint8(idx - ActionBasePlay), true
	}
	return 0, false
}

// ActionIsChooseColor returns the color if idx encodes a ChooseColor action.
func ActionIsChooseColor(idx uint16) (color uint8, ok bool) {
	if idx >= ActionBaseChooseColor && idx < ActionBaseChooseColor+uint16(NumColors) {
		return uint8(idx - ActionBaseChooseColor), true
	}
	return 0, false
}
