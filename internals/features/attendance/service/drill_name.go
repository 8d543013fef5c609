// file: internals/features/attendance/service/drill_name.go
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// canonicalDrillRe matches the auto-generated "Drill N" family, any case,
// any amount of internal whitespace.
var canonicalDrillRe = regexp.MustCompile(`(?i)^drill\s+(\d+)$`)

// resolveDrillName decides the final name of a new drill.
//
// An empty requested name gets the canonical "Drill {activeCount+1}". When a
// canonical name collides with an existing live drill, numbering walks up
// from the collided number until a free one appears. A caller-supplied
// free-text name is taken verbatim; a collision there is the caller's
// mistake and comes back as a conflict.
func resolveDrillName(requested string, activeCount int64, existing []string) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		taken[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	name := strings.TrimSpace(requested)
	if name == "" {
		name = fmt.Sprintf("Drill %d", activeCount+1)
	}

	if _, clash := taken[strings.ToLower(name)]; !clash {
		return name, nil
	}

	// only the canonical family renumbers itself
	m := canonicalDrillRe.FindStringSubmatch(name)
	if m == nil {
		return "", fiber.NewError(fiber.StatusConflict, "Drill name already exists in this session.")
	}

	n, _ := strconv.Atoi(m[1])
	for {
		candidate := "Drill " + strconv.Itoa(n)
		if _, clash := taken[strings.ToLower(candidate)]; !clash {
			return candidate, nil
		}
		n++
	}
}
