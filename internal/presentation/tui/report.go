package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/lattice/pkg/domain"
)

// Field is one row of a run report.
type Field struct {
	Name  string
	Value string
}

// Report formats a finished run as markdown.
func Report(snap *domain.Snapshot, elapsed time.Duration, extra ...Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s run `%s`\n\n", snap.Kind, snap.ID)
	b.WriteString("| Field | Value |\n|---|---|\n")

	fields := []Field{{"Generation", fmt.Sprint(snap.Generation)}}
	switch snap.Kind {
	case domain.KindConway:
		fields = append(fields,
			Field{"Dimensions", fmt.Sprint(snap.Dimensions)},
			Field{"Active cells", fmt.Sprint(len(snap.Cells))},
		)
	case domain.KindCups:
		fields = append(fields, Field{"Cups", fmt.Sprint(len(snap.Ring))})
	}
	fields = append(fields, extra...)
	fields = append(fields, Field{"Elapsed", elapsed.Round(time.Millisecond).String()})

	for _, f := range fields {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Name, f.Value)
	}
	return b.String()
}
