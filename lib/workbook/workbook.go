package workbook

import (
	"context"
	"fmt"

	"limeharvest/lib/survey"
)

// Sink consumes the named tables of one survey. Implementations are opaque
// to the core: they only ever see Table values.
type Sink interface {
	WriteTable(ctx context.Context, t survey.Table) error
}

// Write pushes every table of a loaded survey into the sink.
func Write(ctx context.Context, sink Sink, s *survey.Survey) error {
	for _, t := range s.Tables() {
		if err := sink.WriteTable(ctx, t); err != nil {
			return fmt.Errorf("workbook: write table %q: %w", t.Name, err)
		}
	}
	return nil
}
