package appr

const (
	RightRebooking = "Right to rebooking on next available flight at no additional cost"
	RightRefund    = "Right to refund if passenger chooses not to travel"
)

// ResolveRights grants rebooking and refund whenever the regime applies.
// These are choice rights, so the control category does not narrow them.
func ResolveRights(applicable bool, _ ControlCategory) (rebooking, refund []string) {
	if !applicable {
		return []string{}, []string{}
	}
	return []string{RightRebooking}, []string{RightRefund}
}
