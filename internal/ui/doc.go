// Package ui renders the styled output of the campuspass one-shot commands.
//
// The interactive interface lives in package tui. The commands here print a
// header, do one thing, and print a result box before exiting:
//
//   - Header: command banner with its parameters
//   - Result: success, failure or warning box with details
//   - Table: aligned rows, used by the layout and discover commands
//
// Details and parameters are ordered slices of Field so the output is
// stable from run to run.
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Verify student ID", "campuspass verify 20231145",
//	    ui.Field{Key: "Backend", Value: url})
//
//	result, err := client.Verify(ctx, userID, id, studentapi.RoleStudent)
//	if err != nil {
//	    p.PrintError("Verification failed", err, []string{studentapi.TroubleshootingHint(err)})
//	    return err
//	}
//	p.PrintSuccess("Student ID verified", ui.Field{Key: "Name", Value: result.Student.FullName})
//
// # Logging Integration
//
// Commands keep zap quiet unless CAMPUSPASS_LOG_LEVEL is set, so the
// curated output is not interleaved with log lines.
package ui
