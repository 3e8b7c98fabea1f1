package facade

import "github.com/aussiebroadwan/aurora/internal/aurora/domain"

// Color is a display category for a status.
type Color string

const (
	ColorWarning Color = "warning"
	ColorSuccess Color = "success"
	ColorMuted   Color = "muted"
	ColorError   Color = "error"
	ColorDefault Color = "default"
)

func CanResend(s domain.Status) bool { return s.CanResend() }
func CanRevoke(s domain.Status) bool { return s.CanRevoke() }

// StatusColor maps a status to its display category. Unknown statuses get
// ColorDefault.
func StatusColor(s domain.Status) Color {
	switch s {
	case domain.StatusPending:
		return ColorWarning
	case domain.StatusAccepted:
		return ColorSuccess
	case domain.StatusExpired:
		return ColorMuted
	case domain.StatusRevoked:
		return ColorError
	default:
		return ColorDefault
	}
}
