package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iudanet/gophqueue/internal/models"
)

// parseAssignments разбирает аргументы вида key=value.
// Значение, являющееся корректным JSON, декодируется (числа, true, null,
// объекты), иначе сохраняется как строка.
func parseAssignments(args []string) (models.Attributes, error) {
	attrs := make(models.Attributes, len(args))

	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", arg)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		attrs[key] = value
	}

	return attrs, nil
}

// formatList выводит список id или "-" для пустого
func formatList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
