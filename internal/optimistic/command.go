// Package optimistic models a local state change that is applied before its
// backing persistence call resolves and reverted exactly if that call fails.
package optimistic

// Command pairs a state change with its symmetric inverse. Apply and Rollback
// must compose to a no-op: Rollback after Apply restores the prior state.
type Command struct {
	Apply    func()
	Rollback func()
}

// Run applies the command, invokes persist, and rolls the command back if
// persist fails. The persistence error is returned unchanged so callers keep
// their own taxonomy.
func Run(cmd Command, persist func() error) error {
	cmd.Apply()
	if err := persist(); err != nil {
		cmd.Rollback()
		return err
	}
	return nil
}
