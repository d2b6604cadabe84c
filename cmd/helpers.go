package cmd

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
)

// findRecord resolves ref to a record in items. ref may be a full id or a
// unique prefix of one, as printed by list commands.
func findRecord[T model.Record](kind string, items []T, ref string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, errors.NewUserError(kind+" id is required", "Pass the id shown by the list command")
	}

	var matches []T
	for _, item := range items {
		id := item.GetID()
		if id == ref {
			return item, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return zero, errors.NotFound(kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, errors.NewUserErrorWithField("id", ref,
			fmt.Sprintf("Ambiguous %s id (%d matches)", kind, len(matches)),
			"Type more characters of the id")
	}
}

// enumValue normalizes user input to the stored upper-case enum spelling.
func enumValue(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// optionalDay parses a --date style flag into a day start, nil when empty.
func optionalDay(input string) (*int64, error) {
	return parser.OptionalDay(input, ctx.Now())
}

// printRecord reports a mutation: the record as JSON, or a success line.
func printRecord(status, kind, id string, record any, message string) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord(status, kind, id, record)
	}
	ctx.CLIFormatter().Success(message)
	return nil
}

// printStatus reports an outcome without a record.
func printStatus(status, message string) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus(status, message)
	}
	ctx.CLIFormatter().Success(message)
	return nil
}

// printList prints items as JSON or hands them to the CLI printer.
func printList[T any](kind string, items []T, cli func(*output.CLIFormatter, []T)) error {
	if ctx.IsJSON() {
		return output.PrintList(ctx.JSONFormatter(), kind, items)
	}
	cli(ctx.CLIFormatter(), items)
	return nil
}

func short(id string) string {
	return output.ShortID(id)
}
