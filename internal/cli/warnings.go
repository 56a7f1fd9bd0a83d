package cli

import (
	"fmt"

	"github.com/hbowie/NotenikLib-sub002/internal/maker"
	"github.com/hbowie/NotenikLib-sub002/internal/parser"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

// rejectionWarnings reports the label lines whose data was dropped.
func rejectionWarnings(res *parser.Result) []Warning {
	var warnings []Warning
	for _, o := range res.Rejected() {
		warnings = append(warnings, Warning{
			Code:    WarnFieldRejected,
			Message: fmt.Sprintf("label %q is not in the field dictionary; its value was dropped", o.Label),
			Field:   o.Label,
			Line:    o.Line,
		})
	}
	return warnings
}

func escalationWarning(esc *maker.Escalation) []Warning {
	if esc == nil {
		return nil
	}
	return []Warning{{
		Code:    WarnDialectEscalated,
		Message: fmt.Sprintf("wrote %s instead of %s: %s", esc.To, esc.From, esc.Reason),
		Field:   esc.Field,
	}}
}

// printWarnings writes warnings to stderr in text mode.
func printWarnings(warnings []Warning) {
	for _, w := range warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, msg)
		}
		fmt.Fprintln(stderr, ui.Warning(msg))
	}
}
