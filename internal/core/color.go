package core

// Color is the role of a screen cell. The platform layer maps roles to
// concrete terminal colors through the active theme.
type Color uint8

// Color roles used by the Snake renderer.
const (
	ColorDefault Color = iota
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorBonus
	ColorBorder
	ColorHUD
	ColorOverlay
	ColorAccent
	ColorDanger
)

// String returns the role name.
func (c Color) String() string {
	switch c {
	case ColorSnakeHead:
		return "head"
	case ColorSnakeBody:
		return "body"
	case ColorFood:
		return "food"
	case ColorBonus:
		return "bonus"
	case ColorBorder:
		return "border"
	case ColorHUD:
		return "hud"
	case ColorOverlay:
		return "overlay"
	case ColorAccent:
		return "accent"
	case ColorDanger:
		return "danger"
	default:
		return "default"
	}
}
